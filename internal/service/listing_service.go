package service

import (
	"context"
	"fmt"

	"stayspot/internal/domain"
	"stayspot/internal/models"
)

type ListingService struct {
	store domain.Store
	agg   *AggregationService
}

func NewListingService(store domain.Store, agg *AggregationService) *ListingService {
	return &ListingService{store: store, agg: agg}
}

// SpotPage is one page of the public listing, echoing the effective page
// and size after normalization.
type SpotPage struct {
	Spots []*models.ListedSpot
	Page  int
	Size  int
}

func (s *ListingService) ListSpots(ctx context.Context, page, size int) (*SpotPage, error) {
	if page < 1 {
		page = models.DefaultPage
	}
	if size < 1 {
		size = models.DefaultPageSize
	}
	offset := size * (page - 1)

	spots, err := s.store.ListSpots(ctx, size, offset)
	if err != nil {
		return nil, err
	}

	listed, err := s.mergeAggregates(ctx, spots)
	if err != nil {
		return nil, err
	}

	return &SpotPage{Spots: listed, Page: page, Size: size}, nil
}

func (s *ListingService) ListOwnedSpots(ctx context.Context, ownerID int64) ([]*models.OwnedSpot, error) {
	spots, err := s.store.ListSpotsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	listed, err := s.mergeAggregates(ctx, spots)
	if err != nil {
		return nil, err
	}

	owned := make([]*models.OwnedSpot, 0, len(listed))
	for _, spot := range listed {
		rating := models.NoRatingPlaceholder
		if spot.AvgRating != nil {
			rating = fmt.Sprintf("%.1f", *spot.AvgRating)
		}
		owned = append(owned, &models.OwnedSpot{
			Spot:         spot.Spot,
			AvgRating:    rating,
			PreviewImage: spot.PreviewImage,
		})
	}
	return owned, nil
}

func (s *ListingService) GetSpot(ctx context.Context, id int64) (*models.SpotDetail, error) {
	spot, err := s.store.GetSpot(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.store.GetSpotImages(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.store.GetUser(ctx, spot.OwnerID)
	if err != nil {
		return nil, err
	}

	agg, err := s.agg.RatingAggregate(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerRef := owner.Ref()
	return &models.SpotDetail{
		Spot:          *spot,
		SpotImages:    images,
		Owner:         &ownerRef,
		NumReviews:    agg.Count,
		AvgStarRating: agg.AvgStars,
	}, nil
}

func (s *ListingService) mergeAggregates(ctx context.Context, spots []*models.Spot) ([]*models.ListedSpot, error) {
	ids := make([]int64, 0, len(spots))
	for _, spot := range spots {
		ids = append(ids, spot.ID)
	}

	ratings, err := s.agg.RatingAggregates(ctx, ids)
	if err != nil {
		return nil, err
	}
	previews, err := s.agg.PreviewImages(ctx, ids)
	if err != nil {
		return nil, err
	}

	listed := make([]*models.ListedSpot, 0, len(spots))
	for _, spot := range spots {
		item := &models.ListedSpot{Spot: *spot, PreviewImage: previews[spot.ID]}
		if agg, ok := ratings[spot.ID]; ok {
			item.AvgRating = agg.AvgStars
		}
		listed = append(listed, item)
	}
	return listed, nil
}
