package dto

// ResumenUnidades is the per-scope availability read model.
// Disponibles + Vendidas + ConAnticipo <= Total; units with an unrecognized
// estado count toward Total only.
type ResumenUnidades struct {
	Disponibles int `json:"disponibles"`
	Vendidas    int `json:"vendidas"`
	ConAnticipo int `json:"con_anticipo"`
	Total       int `json:"total"`
}

// ResumenDesarrolloResponse is returned by GET /v1/desarrollos/:id/resumen.
// Avance is round((vendidas+con_anticipo)/total*100); Etiqueta follows the
// fixed-priority status label policy (see service.EtiquetaDesarrollo).
type ResumenDesarrolloResponse struct {
	DesarrolloID string          `json:"desarrollo_id"`
	Unidades     ResumenUnidades `json:"unidades"`
	Etiqueta     string          `json:"etiqueta"`
	Avance       int             `json:"avance"`
	// TotalAproximado is true when the authoritative count failed and Total
	// fell back to the denormalized total_unidades field.
	TotalAproximado bool `json:"total_aproximado"`
}

// ResumenPrototipoResponse is returned by GET /v1/prototipos/:id/resumen.
type ResumenPrototipoResponse struct {
	PrototipoID     string          `json:"prototipo_id"`
	Unidades        ResumenUnidades `json:"unidades"`
	TotalAproximado bool            `json:"total_aproximado"`
}
