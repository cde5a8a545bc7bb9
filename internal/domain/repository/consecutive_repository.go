package repository

// ConsecutiveRepository emite números de documento monotónicos por nombre
// de secuencia. Next debe ser un increment-and-read atómico dentro de la
// misma transacción que la fila que consume el número.
type ConsecutiveRepository interface {
	Next(sequence string) (int64, error)
}
