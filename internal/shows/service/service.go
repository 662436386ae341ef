package shows

import (
	"context"
	"fmt"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type ShowDBLayer interface {
	CreateShow(ctx context.Context, show *models.Show) error
	ListShows(ctx context.Context) ([]models.Show, error)
}

type EventPublisher interface {
	PublishShowCreated(ctx context.Context, show models.Show) error
}

type ShowService struct {
	DB     ShowDBLayer
	Events EventPublisher
	Logger *logger.Logger
}

func NewShowService(db ShowDBLayer, events EventPublisher, log *logger.Logger) *ShowService {
	return &ShowService{DB: db, Events: events, Logger: log}
}

// Create books an artist at a venue. Unknown references surface as
// ErrUnknownArtist or ErrUnknownVenue and nothing is stored.
func (s *ShowService) Create(ctx context.Context, form models.ShowForm) (*models.Show, error) {
	show, err := form.ToShow()
	if err != nil {
		return nil, err
	}
	if err := s.DB.CreateShow(ctx, show); err != nil {
		return nil, fmt.Errorf("failed to create show: %w", err)
	}
	s.Logger.LogBooking("SHOW_CREATED", show.ID,
		fmt.Sprintf("artist %d at venue %d on %s", show.ArtistID, show.VenueID, show.StartTime.Format(models.StartTimeLayout)))

	if s.Events != nil {
		if err := s.Events.PublishShowCreated(ctx, *show); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("show %d created but event not published: %v", show.ID, err))
		}
	}
	return show, nil
}

func (s *ShowService) ListAll(ctx context.Context) ([]models.ShowListing, error) {
	shows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	out := make([]models.ShowListing, 0, len(shows))
	for _, show := range shows {
		out = append(out, models.NewShowListing(show))
	}
	return out, nil
}
