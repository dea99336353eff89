package relay

// Conn — то, что реле требует от транспорта. Send обязан быть
// безопасным для конкурентных вызовов; ошибки доставки — забота
// вызывающего кода (best-effort).
type Conn interface {
	Send(msg Message) error
	Close() error
}
