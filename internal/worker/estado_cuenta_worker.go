package worker

// estado_cuenta_worker.go
// Processes statement jobs from QueueEstadoCuenta: renders the payment
// statement PDF for a venta and, when a destinatario was provided, enqueues
// the email job that delivers it.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gomzkevin/airprop-saas/internal/infra"
	"github.com/gomzkevin/airprop-saas/internal/repository"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type EstadoCuentaWorker struct {
	ventaRepo      repository.VentaRepository
	ledger         service.LedgerService
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewEstadoCuentaWorker(
	ventaRepo repository.VentaRepository,
	ledger service.LedgerService,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *EstadoCuentaWorker {
	return &EstadoCuentaWorker{
		ventaRepo:      ventaRepo,
		ledger:         ledger,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *EstadoCuentaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EstadoCuentaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("estado_cuenta_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("estado_cuenta_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("estado_cuenta_worker: venta not found")
		return
	}

	progreso, err := w.ledger.ProgresoVenta(ctx, venta)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("estado_cuenta_worker: ledger failed")
		return
	}

	pdfPath, err := infra.GenerateEstadoCuentaPDF(venta, progreso.MontoPagado, progreso.Progreso, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("estado_cuenta_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("estado_cuenta_worker: PDF generated")

	if payload.Destinatario == "" {
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: payload.Destinatario,
		Subject: fmt.Sprintf("Estado de cuenta — avance %d%%", progreso.Progreso),
		Body: fmt.Sprintf("Adjunto encontrara su estado de cuenta.\nPagado: $%s de $%s (%d%%)",
			progreso.MontoPagado.StringFixed(2), venta.PrecioTotal.StringFixed(2), progreso.Progreso),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EncolarEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.Destinatario).Msg("estado_cuenta_worker: failed to enqueue email")
	}
}
