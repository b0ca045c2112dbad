package role

// Role rol del usuario dentro del portal
type Role int

const (
	// Comprador levanta solicitudes y carga documentos
	Comprador Role = iota
	// Aprobador revisa solicitudes de fondos en la mesa de control
	Aprobador
	// Admin administra proveedores y reversiones
	Admin
)

func (r Role) String() string {
	switch r {
	case Comprador:
		return "comprador"
	case Aprobador:
		return "aprobador"
	case Admin:
		return "admin"
	}
	return "desconocido"
}
