package worker

// Un job que agota sus reintentos se aparta en dlq:{cola} en vez de
// reencolarse: un barrido de conciliación que falla tres veces seguidas
// apunta a un problema de datos que un cuarto intento no resuelve. Nada
// consume estas listas; son para inspección y reenvío manual.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// JobMuerto is what lands in the DLQ: the original payload plus the context
// needed to replay it by hand.
type JobMuerto struct {
	Cola     string          `json:"cola"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Motivo   string          `json:"motivo"`
	FalloEn  time.Time       `json:"fallo_en"`
	Intentos int             `json:"intentos"`
}

// ApartarEnDLQ moves an exhausted job out of the work queue. Best-effort: a
// DLQ write failure only logs, so a Redis hiccup cannot wedge the worker.
func (d *Dispatcher) ApartarEnDLQ(ctx context.Context, cola, tipo string, payload json.RawMessage, motivo string, intentos int) {
	muerto := JobMuerto{
		Cola:     cola,
		Tipo:     tipo,
		Payload:  payload,
		Motivo:   motivo,
		FalloEn:  time.Now().UTC(),
		Intentos: intentos,
	}

	data, err := json.Marshal(muerto)
	if err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: no se pudo serializar el job")
		return
	}
	if err := d.rdb.LPush(ctx, dlqPrefix+cola, data).Err(); err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: no se pudo apartar el job")
		return
	}

	log.Warn().
		Str("cola", cola).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("intentos", intentos).
		Msg("dlq: job apartado tras agotar reintentos")
}
