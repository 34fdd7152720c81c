package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/providers"
	"github.com/medassist/docfinder/internal/domain/repositories"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
)

// noDataMessage is the fixed notice shown when the dataset has no match.
const noDataMessage = "System will update in few days."

const clarificationResponse = `I'd be happy to help you find the right doctor! To provide the best recommendations, could you please:

1. Specify your medical concern or symptoms, OR
2. Tell me which type of specialist you need (Psychiatrist, Dermatologist, Neurologist, Gynecologist, Urologist)
3. Mention your preferred city (Islamabad or Lahore)

Examples:
- "I need a psychiatrist in Lahore for anxiety"
- "Best dermatologist in Islamabad"
- "I have severe headaches and dizziness"

How can I assist you today?`

const unsupportedCityResponse = `I apologize, but our database currently only covers doctors in Islamabad and Lahore.

We are working on expanding our coverage to other cities across Pakistan.

Would you like me to recommend doctors in Islamabad or Lahore instead? Please let me know your medical concern and preferred city.`

// ChatService runs the turn pipeline: emergency check, interpretation,
// dataset query, ranking, and composition. One user message in, one
// reply out; the only state across turns is the session transcript.
type ChatService struct {
	repo        repositories.DoctorRepository
	interpreter *QueryInterpreterService
	emergency   *EmergencyService
	ranking     *RankingService
	transcripts *TranscriptService
	responder   providers.ResponseProvider
}

// NewChatService creates a new chat service
func NewChatService(
	repo repositories.DoctorRepository,
	interpreter *QueryInterpreterService,
	emergency *EmergencyService,
	ranking *RankingService,
	transcripts *TranscriptService,
	responder providers.ResponseProvider,
) *ChatService {
	return &ChatService{
		repo:        repo,
		interpreter: interpreter,
		emergency:   emergency,
		ranking:     ranking,
		transcripts: transcripts,
		responder:   responder,
	}
}

// NewSession starts a fresh conversation and returns its identifier.
func (s *ChatService) NewSession() string {
	return s.transcripts.NewSession()
}

// HandleTurn processes one user message and produces a reply. It never
// errors on arbitrary user text; the only error paths are infrastructure
// failures on the dataset store.
func (s *ChatService) HandleTurn(ctx context.Context, sessionID, userText string) (*entities.Reply, error) {
	ctx, span := observability.StartSpan(ctx, "chat.handle_turn")
	defer span.End()

	reply, err := s.resolveTurn(ctx, sessionID, userText)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.SetSpanAttributes(span,
		attribute.String("chat.reply_kind", string(reply.Kind)),
		attribute.Int("chat.doctors", len(reply.Doctors)),
	)

	s.record(ctx, sessionID, userText, reply.Text)
	return reply, nil
}

func (s *ChatService) resolveTurn(ctx context.Context, sessionID, userText string) (*entities.Reply, error) {
	// Emergency detection runs before any other interpretation and
	// bypasses ranking and the composer entirely.
	if s.emergency.Detect(userText) {
		return &entities.Reply{
			Kind: entities.ReplyEmergency,
			Text: s.emergency.Response(),
		}, nil
	}

	criteria := s.interpreter.Interpret(userText)

	switch criteria.Intent {
	case entities.IntentUnsupportedCity:
		return &entities.Reply{
			Kind: entities.ReplyUnsupportedCity,
			Text: unsupportedCityResponse,
		}, nil

	case entities.IntentGeneralQuery:
		return &entities.Reply{
			Kind: entities.ReplyClarify,
			Text: clarificationResponse,
		}, nil
	}

	candidates, err := s.repo.Search(ctx, repositories.DoctorFilter{
		Specialty: criteria.Specialty,
		City:      criteria.City,
		MaxFee:    criteria.MaxFee,
	})
	if err != nil {
		return nil, err
	}

	candidates = FilterByGenderPreference(candidates, criteria.Gender)
	ranked := s.ranking.Top(candidates, criteria)

	if len(ranked) == 0 {
		return &entities.Reply{
			Kind: entities.ReplyNoMatch,
			Text: s.noMatchText(criteria),
		}, nil
	}

	if s.responder == nil {
		return &entities.Reply{
			Kind:     entities.ReplyRecommendation,
			Text:     fallbackListing(criteria, ranked),
			Doctors:  ranked,
			Degraded: true,
		}, nil
	}

	text, err := s.responder.Compose(ctx, providers.ComposeRequest{
		UserText:   userText,
		Transcript: s.transcripts.History(ctx, sessionID),
		Criteria:   criteria,
		Doctors:    ranked,
	})
	if err != nil {
		// Composer failure degrades to a plain listing; the match is
		// never dropped.
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Msg("Response composer unavailable, returning plain listing")
		return &entities.Reply{
			Kind:     entities.ReplyRecommendation,
			Text:     fallbackListing(criteria, ranked),
			Doctors:  ranked,
			Degraded: true,
		}, nil
	}

	return &entities.Reply{
		Kind:    entities.ReplyRecommendation,
		Text:    text,
		Doctors: ranked,
	}, nil
}

func (s *ChatService) record(ctx context.Context, sessionID, userText, replyText string) {
	err := s.transcripts.Append(ctx, sessionID,
		entities.TurnMessage{Role: entities.RoleUser, Content: userText},
		entities.TurnMessage{Role: entities.RoleAssistant, Content: replyText},
	)
	if err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to store transcript")
	}
}

func (s *ChatService) noMatchText(criteria entities.SearchCriteria) string {
	var b strings.Builder
	b.WriteString(noDataMessage)
	b.WriteString("\n\nI don't have any ")
	if criteria.Specialty != "" {
		fmt.Fprintf(&b, "%ss", strings.ToLower(string(criteria.Specialty)))
	} else {
		b.WriteString("matching doctors")
	}
	if criteria.City != "" {
		fmt.Fprintf(&b, " in %s", criteria.City)
	}
	b.WriteString(" in the database yet. Would you like to try a different specialty or city (Islamabad/Lahore)?")
	return b.String()
}

// fallbackListing renders the ranked doctors without AI-composed prose.
func fallbackListing(criteria entities.SearchCriteria, ranked []entities.ScoredDoctor) string {
	var b strings.Builder
	b.WriteString("Based on your request, here are the top recommended ")
	if criteria.Specialty != "" {
		fmt.Fprintf(&b, "%ss", strings.ToLower(string(criteria.Specialty)))
	} else {
		b.WriteString("doctors")
	}
	if criteria.City != "" {
		fmt.Fprintf(&b, " in %s", criteria.City)
	}
	b.WriteString(":\n\n")

	for i, sd := range ranked {
		d := sd.Doctor
		fmt.Fprintf(&b, "%d. %s - %s, %s\n", i+1, d.Name, d.Specialty, d.City)
		if d.Specializations != "" {
			fmt.Fprintf(&b, "   Specializations: %s\n", d.Specializations)
		}
		if d.Qualifications != "" {
			fmt.Fprintf(&b, "   Qualifications: %s\n", d.Qualifications)
		}
		if d.Experience != "" {
			fmt.Fprintf(&b, "   Experience: %s\n", d.Experience)
		}
		fmt.Fprintf(&b, "   Reviews: %d\n", d.Reviews)
		fmt.Fprintf(&b, "   Fee: Rs.%d\n\n", d.Fee)
	}

	b.WriteString("Contact details available at clinic.")
	return b.String()
}
