package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tiers", handler(s.getV1Tiers))
		r.Get("/reputation/{address}", handler(s.getV1Reputation))
		r.Get("/reputation/{address}/activity", handler(s.getV1ReputationActivity))
		r.Post("/votes/preview", handler(s.postV1VotesPreview))

		r.Route("/contests", func(r chi.Router) {
			r.Get("/", handler(s.getV1Contests))
			r.Post("/", handler(s.postV1Contests))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler(s.getV1Contest))
				r.Get("/submissions", handler(s.getV1ContestSubmissions))
				r.Post("/submissions", handler(s.postV1ContestSubmissions))
				r.Get("/votes", handler(s.getV1ContestVotes))
			})
		})

		r.Route("/submissions/{id}", func(r chi.Router) {
			r.Post("/votes", handler(s.postV1SubmissionVotes))
			r.Get("/results", handler(s.getV1SubmissionResults))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(r.Context(), w, err)
		}
	}
}
