package artists

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type ArtistDBLayer interface {
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, artist *models.Artist) error
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]models.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]models.Artist, error)
	CountUpcomingShows(ctx context.Context, now time.Time) (map[int64]int, error)
	GetShowsByArtist(ctx context.Context, artistID int64) ([]models.Show, error)
}

type EventPublisher interface {
	PublishArtistCreated(ctx context.Context, artist models.Artist) error
}

type ArtistService struct {
	DB     ArtistDBLayer
	Events EventPublisher
	Logger *logger.Logger
	Now    func() time.Time
}

func NewArtistService(db ArtistDBLayer, events EventPublisher, log *logger.Logger) *ArtistService {
	return &ArtistService{DB: db, Events: events, Logger: log, Now: time.Now}
}

// ListAll returns every artist's id and name, ordered by name.
func (s *ArtistService) ListAll(ctx context.Context) ([]models.ArtistSummary, error) {
	artists, err := s.DB.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	out := make([]models.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, models.ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

func (s *ArtistService) Search(ctx context.Context, term string) (*models.ArtistSearchResult, error) {
	artists, err := s.DB.SearchArtists(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search artists for %q: %w", term, err)
	}
	counts, err := s.DB.CountUpcomingShows(ctx, s.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming shows: %w", err)
	}

	result := &models.ArtistSearchResult{
		SearchTerm: term,
		Count:      len(artists),
		Data:       make([]models.ArtistSummary, 0, len(artists)),
	}
	for _, a := range artists {
		result.Data = append(result.Data, models.ArtistSummary{
			ID:               a.ID,
			Name:             a.Name,
			NumUpcomingShows: counts[a.ID],
		})
	}
	return result, nil
}

// GetDetail returns the artist with its shows split into past and upcoming,
// each enriched with the venue it plays at.
func (s *ArtistService) GetDetail(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.DB.GetShowsByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shows for artist %d: %w", id, err)
	}

	past, upcoming := models.PartitionShows(shows, s.Now())
	detail := &models.ArtistDetail{
		Artist:        *artist,
		PastShows:     make([]models.ArtistShow, 0, len(past)),
		UpcomingShows: make([]models.ArtistShow, 0, len(upcoming)),
	}
	for _, show := range past {
		detail.PastShows = append(detail.PastShows, models.NewArtistShow(show))
	}
	for _, show := range upcoming {
		detail.UpcomingShows = append(detail.UpcomingShows, models.NewArtistShow(show))
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

func (s *ArtistService) GetForEdit(ctx context.Context, id int64) (*models.Artist, models.ArtistForm, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	if err != nil {
		return nil, models.ArtistForm{}, err
	}
	return artist, models.ArtistFormFromArtist(*artist), nil
}

func (s *ArtistService) Create(ctx context.Context, form models.ArtistForm) (*models.Artist, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	artist := &models.Artist{}
	form.ApplyTo(artist)
	if err := s.DB.CreateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to create artist %q: %w", form.Name, err)
	}
	s.Logger.LogBooking("ARTIST_CREATED", artist.ID, artist.Name)

	if s.Events != nil {
		if err := s.Events.PublishArtistCreated(ctx, *artist); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("artist %d created but event not published: %v", artist.ID, err))
		}
	}
	return artist, nil
}

func (s *ArtistService) Update(ctx context.Context, id int64, form models.ArtistForm) (*models.Artist, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	artist, err := s.DB.GetArtistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(artist)
	if err := s.DB.UpdateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to update artist %d: %w", id, err)
	}
	s.Logger.LogBooking("ARTIST_UPDATED", artist.ID, artist.Name)
	return artist, nil
}
