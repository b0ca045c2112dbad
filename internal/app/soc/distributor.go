package soc

// Asignacion cuota de un centro de gestión sobre el monto seleccionado
type Asignacion struct {
	Centro string
	Monto  Money
}

// Distribuir reparte montoSeleccionado entre centros de gestión.
// Todo o nada: la suma debe calzar exacta (al centavo), sin centros
// repetidos ni cuotas no positivas. Devuelve una copia propia del set
// aceptado; redistribuir reemplaza el set anterior completo.
func Distribuir(montoSeleccionado Money, asignaciones []Asignacion) ([]Asignacion, error) {
	if montoSeleccionado <= 0 {
		return nil, &ErrorFueraDeRango{Min: 1, Max: montoSeleccionado, Solicitado: montoSeleccionado}
	}
	if len(asignaciones) == 0 {
		return nil, &ErrorAsignacionDescuadrada{Esperado: montoSeleccionado, Suma: 0}
	}

	vistos := make(map[string]bool, len(asignaciones))
	var suma Money
	for _, a := range asignaciones {
		if a.Monto <= 0 {
			return nil, &ErrorFueraDeRango{Min: 1, Max: montoSeleccionado, Solicitado: a.Monto}
		}
		if vistos[a.Centro] {
			return nil, &ErrorCentroDuplicado{Centro: a.Centro}
		}
		vistos[a.Centro] = true
		suma += a.Monto
	}

	if suma != montoSeleccionado {
		return nil, &ErrorAsignacionDescuadrada{Esperado: montoSeleccionado, Suma: suma}
	}

	aceptadas := make([]Asignacion, len(asignaciones))
	copy(aceptadas, asignaciones)
	return aceptadas, nil
}
