package soc

import (
	"errors"
	"fmt"
)

// Errores de validación del motor. Todos son locales: se devuelven al
// llamador de forma síncrona y no dejan estado parcial. Cada uno lleva un
// mensaje legible suficiente para mostrar en la interfaz sin recalcular
// la causa.

var (
	// ErrTokenInvalido el token de aprobación no existe o ya fue consumido
	ErrTokenInvalido = errors.New("el enlace de aprobación es inválido o ya fue utilizado")

	// ErrNoElegible el participante no tiene el flag aprueba
	ErrNoElegible = errors.New("el participante no está habilitado para aprobar esta solicitud")

	// ErrNoFinaliza el participante no puede cerrar la solicitud
	ErrNoFinaliza = errors.New("el participante no está habilitado para finalizar esta solicitud")
)

// ErrorFondosInsuficientes el monto excede el disponible de la SOC
type ErrorFondosInsuficientes struct {
	Disponible Money
	Solicitado Money
}

func (e *ErrorFondosInsuficientes) Error() string {
	return fmt.Sprintf("fondos insuficientes: disponible %s, solicitado %s",
		e.Disponible.Decimal(), e.Solicitado.Decimal())
}

// ErrorFueraDeRango el monto o porcentaje queda fuera de la ventana legal
type ErrorFueraDeRango struct {
	Min        Money
	Max        Money
	Solicitado Money
}

func (e *ErrorFueraDeRango) Error() string {
	return fmt.Sprintf("monto fuera de rango: se aceptan valores entre %s y %s, solicitado %s",
		e.Min.Decimal(), e.Max.Decimal(), e.Solicitado.Decimal())
}

// ErrorAsignacionDescuadrada la suma de asignaciones no calza con el monto seleccionado
type ErrorAsignacionDescuadrada struct {
	Esperado Money
	Suma     Money
}

func (e *ErrorAsignacionDescuadrada) Error() string {
	return fmt.Sprintf("la distribución no cuadra: el total asignado %s difiere del monto seleccionado %s",
		e.Suma.Decimal(), e.Esperado.Decimal())
}

// ErrorCentroDuplicado un centro de gestión aparece más de una vez
type ErrorCentroDuplicado struct {
	Centro string
}

func (e *ErrorCentroDuplicado) Error() string {
	return fmt.Sprintf("el centro de gestión %s aparece más de una vez en la distribución", e.Centro)
}

// ErrorTransicionInvalida el cambio de estado viola las reglas de la máquina
type ErrorTransicionInvalida struct {
	Desde  EstadoGestion
	Hacia  EstadoGestion
	Motivo string
}

func (e *ErrorTransicionInvalida) Error() string {
	if e.Motivo != "" {
		return fmt.Sprintf("transición inválida de %s a %s: %s", e.Desde, e.Hacia, e.Motivo)
	}
	return fmt.Sprintf("transición inválida de %s a %s", e.Desde, e.Hacia)
}
