package service

import (
	"context"
	"testing"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/stretchr/testify/assert"
)

func unidadesConEstados(estados ...string) []model.Unidad {
	out := make([]model.Unidad, 0, len(estados))
	for _, e := range estados {
		out = append(out, model.Unidad{Estado: e})
	}
	return out
}

func TestContarPorEstado(t *testing.T) {
	r := ContarPorEstado(unidadesConEstados(
		model.UnidadDisponible, model.UnidadDisponible,
		model.UnidadVendido,
		model.UnidadConAnticipo,
		"reservado_legacy", // unrecognized: total only
	))

	assert.Equal(t, 2, r.Disponibles)
	assert.Equal(t, 1, r.Vendidas)
	assert.Equal(t, 1, r.ConAnticipo)
	assert.Equal(t, 5, r.Total)
}

func TestEtiquetaDesarrollo_PrioridadDeRamas(t *testing.T) {
	cases := []struct {
		name    string
		resumen dto.ResumenUnidades
		want    string
	}{
		// Sold units dominate even when nothing is left available.
		{"vendidas y agotado", dto.ResumenUnidades{Vendidas: 3, ConAnticipo: 2, Disponibles: 0, Total: 10}, EtiquetaEnVenta},
		{"alguna vendida", dto.ResumenUnidades{Vendidas: 1, Disponibles: 5, Total: 6}, EtiquetaEnVenta},
		{"solo anticipos", dto.ResumenUnidades{ConAnticipo: 2, Disponibles: 4, Total: 6}, EtiquetaPreVenta},
		{"agotado sin vendidas", dto.ResumenUnidades{Disponibles: 0, Total: 4}, EtiquetaVendido},
		{"todo disponible", dto.ResumenUnidades{Disponibles: 4, Total: 4}, EtiquetaPreVenta},
		{"sin unidades", dto.ResumenUnidades{}, EtiquetaPreVenta},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EtiquetaDesarrollo(tc.resumen))
		})
	}
}

func TestResumenDesarrollo(t *testing.T) {
	desarrolloRepo := newStubDesarrolloRepo()
	prototipoRepo := newStubPrototipoRepo()
	unidadRepo := newStubUnidadRepo()
	svc := NewDisponibilidadService(unidadRepo, prototipoRepo, desarrolloRepo)

	d := desarrolloRepo.add(model.Desarrollo{Nombre: "Torre", TotalUnidades: 99})
	p1 := prototipoRepo.add(model.Prototipo{DesarrolloID: d.ID, Nombre: "A"})
	p2 := prototipoRepo.add(model.Prototipo{DesarrolloID: d.ID, Nombre: "B"})

	unidadRepo.add(model.Unidad{PrototipoID: p1.ID, Estado: model.UnidadVendido})
	unidadRepo.add(model.Unidad{PrototipoID: p1.ID, Estado: model.UnidadDisponible})
	unidadRepo.add(model.Unidad{PrototipoID: p2.ID, Estado: model.UnidadConAnticipo})
	unidadRepo.add(model.Unidad{PrototipoID: p2.ID, Estado: model.UnidadDisponible})

	resp, err := svc.ResumenDesarrollo(context.Background(), d.ID)
	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Unidades.Total)
	assert.Equal(t, 1, resp.Unidades.Vendidas)
	assert.Equal(t, 1, resp.Unidades.ConAnticipo)
	assert.Equal(t, 2, resp.Unidades.Disponibles)
	assert.Equal(t, EtiquetaEnVenta, resp.Etiqueta)
	assert.Equal(t, 50, resp.Avance) // (1+1)/4
	assert.False(t, resp.TotalAproximado)
}

func TestResumenDesarrollo_DegradaAlTotalDenormalizado(t *testing.T) {
	desarrolloRepo := newStubDesarrolloRepo()
	prototipoRepo := newStubPrototipoRepo()
	unidadRepo := newStubUnidadRepo()
	unidadRepo.failList = true
	svc := NewDisponibilidadService(unidadRepo, prototipoRepo, desarrolloRepo)

	d := desarrolloRepo.add(model.Desarrollo{Nombre: "Torre", TotalUnidades: 12})
	prototipoRepo.add(model.Prototipo{DesarrolloID: d.ID})

	resp, err := svc.ResumenDesarrollo(context.Background(), d.ID)
	assert.NoError(t, err)
	assert.True(t, resp.TotalAproximado)
	assert.Equal(t, 12, resp.Unidades.Total)
	// Degraded counts must not produce a spurious "Vendido".
	assert.Equal(t, EtiquetaPreVenta, resp.Etiqueta)
}

func TestResumenPrototipo(t *testing.T) {
	desarrolloRepo := newStubDesarrolloRepo()
	prototipoRepo := newStubPrototipoRepo()
	unidadRepo := newStubUnidadRepo()
	svc := NewDisponibilidadService(unidadRepo, prototipoRepo, desarrolloRepo)

	p := prototipoRepo.add(model.Prototipo{Nombre: "A", TotalUnidades: 8})
	unidadRepo.add(model.Unidad{PrototipoID: p.ID, Estado: model.UnidadDisponible})
	unidadRepo.add(model.Unidad{PrototipoID: p.ID, Estado: model.UnidadVendido})

	resp, err := svc.ResumenPrototipo(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Unidades.Total)
	assert.Equal(t, 1, resp.Unidades.Vendidas)
	assert.False(t, resp.TotalAproximado)
}

func TestResumenPrototipo_SinUnidadesGeneradas(t *testing.T) {
	desarrolloRepo := newStubDesarrolloRepo()
	prototipoRepo := newStubPrototipoRepo()
	unidadRepo := newStubUnidadRepo()
	svc := NewDisponibilidadService(unidadRepo, prototipoRepo, desarrolloRepo)

	// Declared total but no generated units yet: the card shows the
	// denormalized count flagged as approximate.
	p := prototipoRepo.add(model.Prototipo{Nombre: "A", TotalUnidades: 8})

	resp, err := svc.ResumenPrototipo(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.True(t, resp.TotalAproximado)
	assert.Equal(t, 8, resp.Unidades.Total)
	assert.Equal(t, 8, resp.Unidades.Disponibles)
	assert.Equal(t, EtiquetaPreVenta, EtiquetaDesarrollo(resp.Unidades))
}
