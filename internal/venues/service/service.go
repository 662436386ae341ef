package venues

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type VenueDBLayer interface {
	CreateVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, venue *models.Venue) error
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	SearchVenues(ctx context.Context, term string) ([]models.Venue, error)
	CountUpcomingShows(ctx context.Context, now time.Time) (map[int64]int, error)
	GetShowsByVenue(ctx context.Context, venueID int64) ([]models.Show, error)
	DeleteVenue(ctx context.Context, id int64) error
}

type EventPublisher interface {
	PublishVenueCreated(ctx context.Context, venue models.Venue) error
	PublishVenueDeleted(ctx context.Context, id int64) error
}

type VenueService struct {
	DB     VenueDBLayer
	Events EventPublisher
	Logger *logger.Logger
	// Now is the clock used for the past/upcoming split.
	Now func() time.Time
}

func NewVenueService(db VenueDBLayer, events EventPublisher, log *logger.Logger) *VenueService {
	return &VenueService{DB: db, Events: events, Logger: log, Now: time.Now}
}

// ListGroupedByLocation returns one area per distinct (city, state) with its
// venues and their upcoming show counts.
func (s *VenueService) ListGroupedByLocation(ctx context.Context) ([]models.VenueArea, error) {
	locations, err := s.DB.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue locations: %w", err)
	}
	venues, err := s.DB.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	counts, err := s.DB.CountUpcomingShows(ctx, s.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming shows: %w", err)
	}

	byLocation := make(map[models.Location][]models.VenueSummary, len(locations))
	for _, v := range venues {
		byLocation[v.Location()] = append(byLocation[v.Location()], models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}

	areas := make([]models.VenueArea, 0, len(locations))
	for _, loc := range locations {
		areas = append(areas, models.VenueArea{
			City:   loc.City,
			State:  loc.State,
			Venues: byLocation[loc],
		})
	}
	return areas, nil
}

func (s *VenueService) Search(ctx context.Context, term string) (*models.VenueSearchResult, error) {
	venues, err := s.DB.SearchVenues(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues for %q: %w", term, err)
	}
	counts, err := s.DB.CountUpcomingShows(ctx, s.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming shows: %w", err)
	}

	result := &models.VenueSearchResult{
		SearchTerm: term,
		Count:      len(venues),
		Data:       make([]models.VenueSummary, 0, len(venues)),
	}
	for _, v := range venues {
		result.Data = append(result.Data, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return result, nil
}

// GetDetail returns the venue with its shows split into past and upcoming.
func (s *VenueService) GetDetail(ctx context.Context, id int64) (*models.VenueDetail, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.DB.GetShowsByVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shows for venue %d: %w", id, err)
	}

	past, upcoming := models.PartitionShows(shows, s.Now())
	detail := &models.VenueDetail{
		Venue:         *venue,
		PastShows:     make([]models.VenueShow, 0, len(past)),
		UpcomingShows: make([]models.VenueShow, 0, len(upcoming)),
	}
	for _, show := range past {
		detail.PastShows = append(detail.PastShows, models.NewVenueShow(show))
	}
	for _, show := range upcoming {
		detail.UpcomingShows = append(detail.UpcomingShows, models.NewVenueShow(show))
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

func (s *VenueService) Get(ctx context.Context, id int64) (*models.Venue, error) {
	return s.DB.GetVenueByID(ctx, id)
}

// GetForEdit looks the venue up so the edit form starts from stored values.
func (s *VenueService) GetForEdit(ctx context.Context, id int64) (*models.Venue, models.VenueForm, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if err != nil {
		return nil, models.VenueForm{}, err
	}
	return venue, models.VenueFormFromVenue(*venue), nil
}

func (s *VenueService) Create(ctx context.Context, form models.VenueForm) (*models.Venue, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	venue := &models.Venue{}
	form.ApplyTo(venue)
	if err := s.DB.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue %q: %w", form.Name, err)
	}
	s.Logger.LogBooking("VENUE_CREATED", venue.ID, venue.Name)

	if s.Events != nil {
		if err := s.Events.PublishVenueCreated(ctx, *venue); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("venue %d created but event not published: %v", venue.ID, err))
		}
	}
	return venue, nil
}

func (s *VenueService) Update(ctx context.Context, id int64, form models.VenueForm) (*models.Venue, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	venue, err := s.DB.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(venue)
	if err := s.DB.UpdateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue %d: %w", id, err)
	}
	s.Logger.LogBooking("VENUE_UPDATED", venue.ID, venue.Name)
	return venue, nil
}

// Delete removes a venue unless shows still reference it.
func (s *VenueService) Delete(ctx context.Context, id int64) error {
	if err := s.DB.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.Logger.LogBooking("VENUE_DELETED", id, "venue removed")

	if s.Events != nil {
		if err := s.Events.PublishVenueDeleted(ctx, id); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("venue %d deleted but event not published: %v", id, err))
		}
	}
	return nil
}
