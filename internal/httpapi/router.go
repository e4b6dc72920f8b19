package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskbridge/internal/api"
	"taskbridge/internal/delivery"
	"taskbridge/internal/forward"
	"taskbridge/internal/normalize"
	"taskbridge/internal/webhook"
	"taskbridge/pkg/clickup"
	"taskbridge/pkg/config"
)

type Dependencies struct {
	Cfg config.Config

	// DB is nil when no DATABASE_URL is configured.
	DB *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var deliveries *delivery.Repository
	if deps.DB != nil {
		deliveries = delivery.NewRepository(deps.DB)
	}

	var forwarder *forward.Forwarder
	if deps.Cfg.ClickUp.APIToken != "" && deps.Cfg.ClickUp.ListID != "" {
		fields := fieldIDs(deps.Cfg.ClickUp)
		forwarder = &forward.Forwarder{
			Client: clickup.Client{
				BaseURL:  deps.Cfg.ClickUp.BaseURL,
				APIToken: deps.Cfg.ClickUp.APIToken,
				ListID:   deps.Cfg.ClickUp.ListID,
				Fields:   fields,
			},
			Fields: fields,
		}
	}

	webhookHandler := webhook.Handler{
		Cfg:        deps.Cfg,
		Pipeline:   normalize.NewPipeline(),
		Deliveries: deliveries,
		Forwarder:  forwarder,
	}
	deliveryHandlers := delivery.Handlers{Repo: deliveries}

	// v1
	r.Route("/v1", func(r chi.Router) {
		r.Post("/webhooks/normalize", webhookHandler.Normalize)
		r.Post("/webhooks/sync", webhookHandler.Sync)

		// Ops (token-guarded in prod)
		r.Group(func(r chi.Router) {
			r.Use(api.OpsAuth(deps.Cfg))
			r.Get("/deliveries", deliveryHandlers.List)
		})
	})

	return r
}

func fieldIDs(cfg config.ClickUpConfig) clickup.FieldIDs {
	return clickup.FieldIDs{
		Email:    cfg.EmailFieldID,
		Phone:    cfg.PhoneFieldID,
		Value:    cfg.ValueFieldID,
		WhatsApp: cfg.WhatsAppFieldID,
		Settled:  cfg.SettledFieldID,
	}
}
