package domain

// DirectRoomID выводит id личной комнаты из пары пользователей.
// Сортировка пары гарантирует, что обе стороны независимо
// вычислят один и тот же id.
func DirectRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}
