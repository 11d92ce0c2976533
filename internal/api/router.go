package api

import "github.com/go-chi/chi/v5"

// setupRoutes registers every API route on the server's router.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/parks", func(r chi.Router) {
			r.Get("/", s.parkHandler.ListParks)
			r.Get("/{parkID}/attractions", s.parkHandler.ListAttractions)
		})
		r.Get("/attractions/{attractionID}", s.parkHandler.GetAttraction)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.tripHandler.CreateTrip)
			r.Get("/", s.tripHandler.ListTrips)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.tripHandler.GetTrip)
				r.Delete("/", s.tripHandler.DeleteTrip)

				r.Put("/days/{dayID}", s.tripHandler.SetDayType)
				r.Post("/days/{dayID}/itinerary", s.tripHandler.AddItineraryItem)
				r.Delete("/days/{dayID}/itinerary/{itemID}", s.tripHandler.RemoveItineraryItem)
				r.Get("/days/{dayID}/lightning-lane", s.analysisHandler.GetLightningLaneStrategy)

				r.Route("/party", func(r chi.Router) {
					r.Post("/", s.partyHandler.CreateMember)
					r.Get("/", s.partyHandler.ListMembers)
					r.Put("/{memberID}", s.partyHandler.UpdateMember)
					r.Delete("/{memberID}", s.partyHandler.DeleteMember)
				})

				r.Route("/ratings", func(r chi.Router) {
					r.Post("/", s.ratingHandler.RateAttraction)
					r.Get("/", s.ratingHandler.ListRatings)
					r.Get("/summaries", s.ratingHandler.GetSummaries)
					r.Delete("/{memberID}/{attractionID}", s.ratingHandler.DeleteRating)
				})

				r.Route("/analysis", func(r chi.Router) {
					r.Get("/summaries", s.analysisHandler.GetParkSummaries)
					r.Get("/conflicts", s.analysisHandler.GetConflicts)
					r.Get("/recommendations", s.analysisHandler.GetRecommendations)
					r.Get("/park-days", s.analysisHandler.GetParkDays)
					r.Get("/efficiencies", s.analysisHandler.GetEfficiencies)
				})
			})
		})
	})
}
