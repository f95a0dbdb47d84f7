package entity

import "time"

// Company representa la farmacia (tenant). Los datos de contacto salen en el recibo PDF.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación fiscal
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
