package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleProvider builds per-barber gateways over the Google Calendar API.
// One provider per process; gateways are cheap and request-scoped.
type GoogleProvider struct {
	oauth  *oauth2.Config
	logger zerolog.Logger
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string, logger zerolog.Logger) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gcal.CalendarScope},
			Endpoint:     google.Endpoint,
		},
		logger: logger.With().Str("component", "calendar").Logger(),
	}
}

// AuthCodeURL starts the consent flow for a barber.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for a refresh token.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("oauth exchange: %w", err)
	}
	if tok.RefreshToken == "" {
		return "", fmt.Errorf("oauth exchange: no refresh token granted")
	}
	return tok.RefreshToken, nil
}

func (p *GoogleProvider) ForCredential(refreshToken string) Gateway {
	src := p.oauth.TokenSource(context.Background(), &oauth2.Token{
		RefreshToken: refreshToken,
	})

	svc, err := gcal.NewService(context.Background(), option.WithTokenSource(src))
	return &googleGateway{
		svc:     svc,
		initErr: err,
		logger:  p.logger,
	}
}

var _ Provider = (*GoogleProvider)(nil)

type googleGateway struct {
	svc     *gcal.Service
	initErr error
	logger  zerolog.Logger
}

func fromGoogle(ge *gcal.Event) Event {
	ev := Event{
		ID:          ge.Id,
		Summary:     ge.Summary,
		Description: ge.Description,
		HTMLLink:    ge.HtmlLink,
		Status:      ge.Status,
	}
	if ge.Start != nil {
		if t, err := time.Parse(time.RFC3339, ge.Start.DateTime); err == nil {
			ev.Start = t
		}
	}
	if ge.End != nil {
		if t, err := time.Parse(time.RFC3339, ge.End.DateTime); err == nil {
			ev.End = t
		}
	}
	return ev
}

// mapGoogleErr folds the API's "this event id is gone" statuses into
// ErrEventNotFound; everything else passes through for the upstream
// classification.
func mapGoogleErr(err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		if ge.Code == http.StatusNotFound || ge.Code == http.StatusGone {
			return ErrEventNotFound
		}
	}
	return err
}

// ---- gateway operations ----

func (g *googleGateway) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	var out []Event
	call := g.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			out = append(out, fromGoogle(item))
		}
		return nil
	})
	if err != nil {
		g.logger.Warn().Err(err).Str("calendar_id", calendarID).Msg("event list failed")
		return nil, mapGoogleErr(err)
	}

	return out, nil
}

func (g *googleGateway) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	ge, err := g.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleErr(err)
	}

	ev := fromGoogle(ge)
	return &ev, nil
}

func (g *googleGateway) InsertEvent(ctx context.Context, calendarID string, draft EventDraft) (*Event, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	body := &gcal.Event{
		Summary:     draft.Summary,
		Description: draft.Description,
		Start:       &gcal.EventDateTime{DateTime: draft.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: draft.End.Format(time.RFC3339)},
	}

	ge, err := g.svc.Events.Insert(calendarID, body).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		g.logger.Warn().Err(err).Str("calendar_id", calendarID).Msg("event insert failed")
		return nil, mapGoogleErr(err)
	}

	ev := fromGoogle(ge)
	return &ev, nil
}

func (g *googleGateway) UpdateEvent(ctx context.Context, calendarID, eventID string, patch EventPatch) (*Event, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	body := &gcal.Event{Summary: patch.Summary}
	if patch.Start != nil {
		body.Start = &gcal.EventDateTime{DateTime: patch.Start.Format(time.RFC3339)}
	}
	if patch.End != nil {
		body.End = &gcal.EventDateTime{DateTime: patch.End.Format(time.RFC3339)}
	}

	ge, err := g.svc.Events.Patch(calendarID, eventID, body).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		g.logger.Warn().Err(err).Str("event_id", eventID).Msg("event patch failed")
		return nil, mapGoogleErr(err)
	}

	ev := fromGoogle(ge)
	return &ev, nil
}

func (g *googleGateway) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if g.initErr != nil {
		return g.initErr
	}

	err := g.svc.Events.Delete(calendarID, eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return mapGoogleErr(err)
	}
	return nil
}
