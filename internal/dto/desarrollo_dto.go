package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearDesarrolloRequest struct {
	Nombre        string   `json:"nombre"     validate:"required,min=2"`
	Ubicacion     string   `json:"ubicacion"  validate:"required,min=2"`
	Descripcion   *string  `json:"descripcion"`
	Amenidades    []string `json:"amenidades"`
	TotalUnidades int      `json:"total_unidades" validate:"min=0"`
	ImagenURL     *string  `json:"imagen_url" validate:"omitempty,url"`
}

type ActualizarDesarrolloRequest struct {
	Nombre        *string  `json:"nombre"     validate:"omitempty,min=2"`
	Ubicacion     *string  `json:"ubicacion"  validate:"omitempty,min=2"`
	Descripcion   *string  `json:"descripcion"`
	Amenidades    []string `json:"amenidades"`
	TotalUnidades *int     `json:"total_unidades" validate:"omitempty,min=0"`
	ImagenURL     *string  `json:"imagen_url" validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DesarrolloResponse struct {
	ID            string   `json:"id"`
	Nombre        string   `json:"nombre"`
	Ubicacion     string   `json:"ubicacion"`
	Descripcion   *string  `json:"descripcion,omitempty"`
	Amenidades    []string `json:"amenidades"`
	TotalUnidades int      `json:"total_unidades"`
	ImagenURL     *string  `json:"imagen_url,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

type DesarrolloListResponse struct {
	Data  []DesarrolloResponse `json:"data"`
	Total int64                `json:"total"`
}
