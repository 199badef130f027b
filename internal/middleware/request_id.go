package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"app-vet/internal/platform/httpclient"
)

// PropagateRequestID va después de chimw.RequestID: devuelve el id en la
// respuesta y lo deja en el contexto para los clientes salientes.
func PropagateRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := chimw.GetReqID(r.Context())
		if rid == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(chimw.RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(httpclient.WithRequestID(r.Context(), rid)))
	})
}
