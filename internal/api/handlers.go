package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stayspot/internal/metrics"
	"stayspot/internal/models"
)

// actingUser extracts the authenticated user id forwarded by the
// session-owning edge. Zero means anonymous.
func (s *HTTPServer) actingUser(r *http.Request) int64 {
	header := strings.TrimSpace(s.cfg.Auth.HeaderUserID)
	if header == "" {
		header = "x-user-id"
	}
	raw := strings.TrimSpace(r.Header.Get(header))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

type spotRequest struct {
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
}

func (req *spotRequest) toModel() *models.Spot {
	return &models.Spot{
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
}

func (s *HTTPServer) handleListSpots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list_spots")

	page := queryInt(r, "page")
	size := queryInt(r, "size")

	result, err := s.listings.ListSpots(r.Context(), page, size)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"Spots": result.Spots,
		"page":  result.Page,
		"size":  result.Size,
	})
}

func (s *HTTPServer) handleGetSpot(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("get_spot")

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	detail, err := s.listings.GetSpot(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *HTTPServer) handleCreateSpot(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_spot")

	userID := s.actingUser(r)
	if userID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	spot := req.toModel()
	spot.OwnerID = userID

	created, err := s.spots.CreateSpot(r.Context(), spot)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleUpdateSpot(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("update_spot")

	userID := s.actingUser(r)
	if userID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	spot := req.toModel()
	spot.ID = id

	updated, err := s.spots.UpdateSpot(r.Context(), userID, spot)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteSpot(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("delete_spot")

	userID := s.actingUser(r)
	if userID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	if err := s.spots.DeleteSpot(r.Context(), userID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Successfully deleted")
}

func (s *HTTPServer) handleAddSpotImage(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("add_spot_image")

	userID := s.actingUser(r)
	if userID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	var req struct {
		URL     string `json:"url"`
		Preview bool   `json:"preview"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	image, err := s.spots.AddSpotImage(r.Context(), userID, id, req.URL, req.Preview)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, image)
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list_bookings")

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	listing, err := s.bookings.ListBookingsForSpot(r.Context(), id, s.actingUser(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if listing.IsOwner {
		writeJSON(w, http.StatusOK, map[string]any{"Bookings": listing.Owner})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Bookings": listing.Guest})
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_booking")

	userID := s.actingUser(r)
	if userID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	var req struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	start, end, fields := parseDates(req.StartDate, req.EndDate)
	if len(fields) > 0 {
		writeValidation(w, http.StatusBadRequest, "Validation error", fields)
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), id, userID, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func parseDates(rawStart, rawEnd string) (time.Time, time.Time, map[string]string) {
	fields := make(map[string]string)

	start, err := time.Parse(models.DateLayout, strings.TrimSpace(rawStart))
	if err != nil {
		fields["startDate"] = "startDate must be a valid date (YYYY-MM-DD)"
	}
	end, err := time.Parse(models.DateLayout, strings.TrimSpace(rawEnd))
	if err != nil {
		fields["endDate"] = "endDate must be a valid date (YYYY-MM-DD)"
	}
	return start, end, fields
}

func (s *HTTPServer) handleListReviews(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list_reviews")

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	reviews, err := s.reviews.ListReviewsForSpot(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Reviews": reviews})
}

func (s *HTTPServer) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_review")

	userID := s.actingUser(r)
	if userID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
		return
	}

	var req struct {
		Review string `json:"review"`
		Stars  int64  `json:"stars"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := s.reviews.CreateReview(r.Context(), id, userID, req.Review, req.Stars)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *HTTPServer) handleOwnedSpots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("owned_spots")

	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User couldn't be found")
		return
	}

	owned, err := s.listings.ListOwnedSpots(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Spots": owned})
}
