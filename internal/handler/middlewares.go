package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack())) // slog would fold the trace into one line
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// loadEntity resolves {id} with get and stores the result under key.
func loadEntity[T any](h *Handler, key ContextKey, name string, get func(int64) (*T, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := idParam(r)
			if err != nil || id <= 0 {
				h.errorResponse(w, r, http.StatusBadRequest, "ID "+name+" tidak valid")
				return
			}

			entity, err := get(id)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					h.notFound(w, r, name+" tidak ditemukan")
				default:
					h.internalServerError(w, r, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), key, entity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) technician(next http.Handler) http.Handler {
	return loadEntity(h, TechnicianCtx, "teknisi", h.repository.GetTechnicianByID)(next)
}

func (h *Handler) client(next http.Handler) http.Handler {
	return loadEntity(h, ClientCtx, "klien", h.repository.GetClientByID)(next)
}

func (h *Handler) serviceType(next http.Handler) http.Handler {
	return loadEntity(h, ServiceTypeCtx, "layanan", h.repository.GetServiceTypeByID)(next)
}

func (h *Handler) equipment(next http.Handler) http.Handler {
	return loadEntity(h, EquipmentCtx, "peralatan", h.repository.GetEquipmentByID)(next)
}

func (h *Handler) assignment(next http.Handler) http.Handler {
	return loadEntity(h, AssignmentCtx, "penugasan", h.repository.GetAssignmentByID)(next)
}
