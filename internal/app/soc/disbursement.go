package soc

// Modo forma de calcular el monto de una solicitud de fondos (HES/MIGO)
type Modo string

const (
	// ModoCompleto solicita todo el disponible (sin la reserva de retención)
	ModoCompleto Modo = "completo"
	// ModoPorcentaje el usuario entrega un porcentaje (SOC tipo general)
	ModoPorcentaje Modo = "porcentaje"
	// ModoMonto el usuario entrega un monto directo (SOC tipo contractual)
	ModoMonto Modo = "monto"
	// ModoRetencion libera la reserva del 5% una vez agotado el saldo normal
	ModoRetencion Modo = "retencion"
)

const (
	// PorcMinimo piso del porcentaje manual
	PorcMinimo = 1
	// PorcTope tope del porcentaje manual cuando existe retención vigente:
	// siempre debe quedar intacta la reserva del 5%
	PorcTope = 100 - PorcRetencion

	// VentanaPromedio cantidad de solicitudes aprobadas consideradas para
	// el promedio histórico de SOC contractuales
	VentanaPromedio = 3
)

// Ventana rango legal de entrada para una nueva solicitud de fondos.
// Es informativa para el cliente; el servidor revalida al recibir.
type Ventana struct {
	Modo    Modo
	Min     Money
	Max     Money
	PorcMin int
	PorcMax int
}

// CalcularVentana calcula el rango legal para el modo pedido según el
// estado actual del libro de fondos
func CalcularVentana(s *SOC, modo Modo) (Ventana, error) {
	v := Ventana{Modo: modo}

	switch modo {
	case ModoCompleto:
		d := s.Disponible()
		if d <= 0 {
			return v, &ErrorFondosInsuficientes{Disponible: 0, Solicitado: 0}
		}
		v.Min, v.Max = d, d

	case ModoPorcentaje:
		if s.Tipo != TipoGeneral {
			return v, &ErrorTransicionInvalida{Desde: s.EstadoGestion, Hacia: s.EstadoGestion,
				Motivo: "el modo porcentaje sólo aplica a solicitudes de tipo general"}
		}
		d := s.Disponible()
		if d <= 0 || s.TotalSolicitud <= 0 {
			return v, &ErrorFondosInsuficientes{Disponible: d, Solicitado: 0}
		}
		max := int(d * 100 / s.TotalSolicitud)
		if s.Retencion() > 0 && max > PorcTope {
			max = PorcTope
		}
		if max < PorcMinimo {
			max = PorcMinimo
		}
		v.PorcMin, v.PorcMax = PorcMinimo, max
		v.Min = PorcentajeDe(s.TotalSolicitud, PorcMinimo)
		v.Max = d

	case ModoMonto:
		if s.Tipo != TipoContractual {
			return v, &ErrorTransicionInvalida{Desde: s.EstadoGestion, Hacia: s.EstadoGestion,
				Motivo: "el modo monto sólo aplica a solicitudes de tipo contractual"}
		}
		d := s.Disponible()
		if d <= 0 {
			return v, &ErrorFondosInsuficientes{Disponible: 0, Solicitado: 0}
		}
		v.Min, v.Max = 1, d

	case ModoRetencion:
		if !s.RetencionHabilitada() {
			return v, &ErrorTransicionInvalida{Desde: s.EstadoGestion, Hacia: s.EstadoGestion,
				Motivo: "la retención sólo se libera cuando el saldo normal está agotado"}
		}
		r := s.DisponibleRetencion()
		v.Min, v.Max = r, r

	default:
		return v, &ErrorTransicionInvalida{Desde: s.EstadoGestion, Hacia: s.EstadoGestion,
			Motivo: "modo de solicitud desconocido"}
	}

	return v, nil
}

// MontoPorPorcentaje monto resultante de un porcentaje manual:
// floor(total_solicitud * p / 100), validando la ventana vigente
func MontoPorPorcentaje(s *SOC, pct int) (Money, error) {
	v, err := CalcularVentana(s, ModoPorcentaje)
	if err != nil {
		return 0, err
	}
	if pct < v.PorcMin || pct > v.PorcMax {
		return 0, &ErrorFueraDeRango{Min: v.Min, Max: v.Max, Solicitado: PorcentajeDe(s.TotalSolicitud, pct)}
	}
	monto := PorcentajeDe(s.TotalSolicitud, pct)
	if monto > s.Disponible() {
		return 0, &ErrorFueraDeRango{Min: v.Min, Max: v.Max, Solicitado: monto}
	}
	return monto, nil
}

// Solicitud resultado validado de una solicitud de fondos antes del commit
type Solicitud struct {
	Modo           Modo
	Monto          Money
	ExcedePromedio bool  // advertencia, no bloquea el envío
	Promedio       Money // promedio histórico informado al aprobador
}

// ValidarSolicitud revalida en servidor el monto contra el estado actual
// del libro (la ventana del cliente es sólo referencial). historico trae
// los montos de las últimas solicitudes aprobadas, más reciente primero;
// sólo se usa para SOC contractuales.
func ValidarSolicitud(s *SOC, modo Modo, monto Money, historico []Money) (*Solicitud, error) {
	v, err := CalcularVentana(s, modo)
	if err != nil {
		return nil, err
	}

	if monto <= 0 || monto < v.Min || monto > v.Max {
		return nil, &ErrorFueraDeRango{Min: v.Min, Max: v.Max, Solicitado: monto}
	}

	sol := &Solicitud{Modo: modo, Monto: monto}

	if s.Tipo == TipoContractual && len(historico) > 0 {
		muestra := historico
		if len(muestra) > VentanaPromedio {
			muestra = muestra[:VentanaPromedio]
		}
		var suma Money
		for _, h := range muestra {
			suma += h
		}
		n := Money(len(muestra))
		sol.Promedio = suma / n
		// monto > promedio*1.05, comparado en enteros sin redondeo:
		// monto*n*100 > suma*105
		if monto*n*100 > suma*105 {
			sol.ExcedePromedio = true
		}
	}

	return sol, nil
}
