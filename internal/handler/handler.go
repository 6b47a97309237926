package handler

import (
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/config"
	"github.com/clasnet-dev/field-service/backend/internal/document"
	"github.com/clasnet-dev/field-service/backend/internal/payment"
	"github.com/clasnet-dev/field-service/backend/internal/repository"
	"github.com/clasnet-dev/field-service/backend/internal/sharelink"
	"github.com/clasnet-dev/field-service/backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	archive     *storage.Archive

	policy        payment.Policy
	documents     documentSource
	documentCache documentCache
	generator     *document.Generator
	signer        *sharelink.Signer
	now           func() time.Time

	Mux *chi.Mux
}

// NewHandler wires the HTTP layer. mailCh, rdb and archive may be nil; the
// features depending on them are then unavailable or uncached.
func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, archive *storage.Archive) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	idLocale := id.New()
	uni := ut.New(idLocale, idLocale)
	trans, _ := uni.GetTranslator("id")
	if err := id_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	policy := payment.DefaultPolicy{
		LeadBonusPercent:      cfg.Payment.LeadBonusPercent,
		AssistantSharePercent: cfg.Payment.AssistantSharePercent,
	}
	company := document.Company{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
	}

	h := &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		archive:     archive,

		policy:    policy,
		documents: repo,
		generator: document.NewGenerator(repo, policy, company, document.WithDefaultLocale(cfg.Document.DefaultLocale)),
		signer:    sharelink.NewSigner(cfg.ShareLink.Secret, time.Duration(cfg.ShareLink.Expiration)*time.Second),
		now:       time.Now,

		Mux: chi.NewRouter(),
	}
	if rdb != nil {
		h.documentCache = redisDocumentCache{
			client:  rdb,
			timeout: time.Duration(cfg.Redis.OperationExpiration) * time.Second,
		}
	}

	return h, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/technicians", func(r chi.Router) {
		r.Post("/", h.CreateTechnician)
		r.Get("/", h.GetAllTechnicians)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.technician)
			r.Get("/", h.GetTechnician)
			r.Patch("/", h.UpdateTechnician)
			r.Delete("/", h.DeleteTechnician)
		})
	})

	h.Mux.Route("/clients", func(r chi.Router) {
		r.Post("/", h.CreateClient)
		r.Get("/", h.GetAllClients)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.client)
			r.Get("/", h.GetClient)
			r.Patch("/", h.UpdateClient)
			r.Delete("/", h.DeleteClient)
		})
	})

	h.Mux.Route("/service-types", func(r chi.Router) {
		r.Post("/", h.CreateServiceType)
		r.Get("/", h.GetAllServiceTypes)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.serviceType)
			r.Get("/", h.GetServiceType)
			r.Patch("/", h.UpdateServiceType)
			r.Delete("/", h.DeleteServiceType)
		})
	})

	h.Mux.Route("/equipment", func(r chi.Router) {
		r.Post("/", h.CreateEquipment)
		r.Get("/", h.GetAllEquipment)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.equipment)
			r.Get("/", h.GetEquipment)
			r.Patch("/", h.UpdateEquipment)
			r.Delete("/", h.DeleteEquipment)
		})
	})

	h.Mux.Route("/assignments", func(r chi.Router) {
		r.Post("/", h.CreateAssignment)
		r.Get("/", h.GetAllAssignments)
		r.Route("/{id}", func(r chi.Router) {
			// document routes validate the request before any lookup, so
			// they stay outside the assignment loader
			r.Get("/pdf", h.GetAssignmentPDF)
			r.Route("/documents/{type}", func(r chi.Router) {
				r.Get("/", h.GetAssignmentDocument)
				r.Post("/share", h.ShareAssignmentDocument)
				r.Post("/email", h.EmailAssignmentDocument)
				r.Post("/archive", h.ArchiveAssignmentDocument)
			})

			r.Group(func(r chi.Router) {
				r.Use(h.assignment)
				r.Get("/", h.GetAssignment)
				r.Put("/", h.UpdateAssignment)
				r.Delete("/", h.DeleteAssignment)
			})
		})
	})

	h.Mux.Get("/shared/documents/{token}", h.GetSharedDocument)
	h.Mux.Post("/payments/calculate", h.CalculatePayment)
	h.Mux.Get("/dashboard/stats", h.GetDashboardStats)
}
