package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/config"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/ident"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/llm"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/prompts"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/repositories"
)

// ErrKeyMissing is returned when neither the server nor the caller supplies a
// provider API key. AI endpoints degrade to an explicit error, never a crash.
var ErrKeyMissing = errors.New("no AI provider key configured")

// GenerationRequest carries the fields shared by every AI call.
type GenerationRequest struct {
	Model  string // empty selects the default model
	APIKey string // optional X-User-API-Key override
}

// GeneratedCharacter is the provider's character card proposal. Generation
// returns scalar strings; the client may POST them back as a card.
type GeneratedCharacter struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Goal              string   `json:"goal"`
	Personality       string   `json:"personality"`
	Abilities         string   `json:"abilities"`
	Quote             []string `json:"quote"`
	IntroductionStory string   `json:"introduction_story"`
}

// UpdatedCharacterCard is one revised card in an edit response. List fields
// come back as arrays per the prompt contract.
type UpdatedCharacterCard struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Goal              []string `json:"goal"`
	Personality       []string `json:"personality"`
	Abilities         []string `json:"abilities"`
	Quote             []string `json:"quote"`
	IntroductionStory string   `json:"introduction_story"`
}

// UpdatedCharacterCards is the envelope for character edit responses.
type UpdatedCharacterCards struct {
	UpdatedCards []UpdatedCharacterCard `json:"updated_cards"`
}

// UpdatedWorldviewCard is one revised worldview card in an edit response.
type UpdatedWorldviewCard struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatedWorldviewCards is the envelope for worldview card edit responses.
type UpdatedWorldviewCards struct {
	UpdatedCards []UpdatedWorldviewCard `json:"updated_cards"`
}

// RelationshipSuggestion is the provider's relationship proposal.
type RelationshipSuggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type plotDraftEnvelope struct {
	PlotPoints []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"plot_points"`
}

type plotPointEdit struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerationService runs the AI-backed operations. Context gathering happens
// before the provider call; results that persist are written in a short
// transaction after the call so no transaction is held open across provider
// I/O.
type GenerationService interface {
	GenerateNewWorldview(ctx context.Context, req GenerationRequest, keywords string) (string, error)
	EditWorldview(ctx context.Context, req GenerationRequest, keywords, existingContent string) (string, error)

	GenerateCharacter(ctx context.Context, req GenerationRequest, projectID string, opts CharacterGenOptions) (*GeneratedCharacter, error)
	EditCharacterCards(ctx context.Context, req GenerationRequest, projectID, cardID string, opts CardEditOptions) (*UpdatedCharacterCards, error)
	EditWorldviewCards(ctx context.Context, req GenerationRequest, projectID, cardID string, opts CardEditOptions) (*UpdatedWorldviewCards, error)

	// GenerateDraft replaces the scenario's plot points with a fresh outline.
	GenerateDraft(ctx context.Context, req GenerationRequest, projectID, scenarioID string, characterIDs []string, plotPointCount int) (*models.Scenario, error)
	// EditPlotPoint revises one point and persists the result.
	EditPlotPoint(ctx context.Context, req GenerationRequest, projectID, plotPointID, userPrompt string, characterIDs []string) (*models.PlotPoint, error)

	SuggestRelationship(ctx context.Context, req GenerationRequest, projectID string, opts RelationshipSuggestOptions) (*RelationshipSuggestion, error)
	HighlightNames(ctx context.Context, req GenerationRequest, projectID, cardID, textContent string) (string, error)
}

// CharacterGenOptions selects the context for character generation and edits.
type CharacterGenOptions struct {
	Keywords         string
	CharacterIDs     []string
	WorldviewCardIDs []string
	WorldviewLevel   string
}

// CardEditOptions selects the context for AI card edits.
type CardEditOptions struct {
	PromptText       string
	SelectedCardIDs  []string
	SelectedGroupIDs []string
	WorldviewLevel   string
	EditRelated      bool
}

// RelationshipSuggestOptions selects the pair and bias for a suggestion.
type RelationshipSuggestOptions struct {
	SourceCharacterID string
	TargetCharacterID string
	Tendency          int
	Keyword           string
}

type generationService struct {
	db         *database.DB
	generator  llm.Generator
	aiCfg      config.AIConfig
	cards      repositories.CardRepository
	groups     repositories.GroupRepository
	worldviews repositories.WorldviewRepository
	scenarios  repositories.ScenarioRepository
	rels       repositories.RelationshipRepository
	logger     *zap.Logger
}

// NewGenerationService creates a new generation service.
func NewGenerationService(
	db *database.DB,
	generator llm.Generator,
	aiCfg config.AIConfig,
	cards repositories.CardRepository,
	groups repositories.GroupRepository,
	worldviews repositories.WorldviewRepository,
	scenarios repositories.ScenarioRepository,
	rels repositories.RelationshipRepository,
	logger *zap.Logger,
) GenerationService {
	return &generationService{
		db:         db,
		generator:  generator,
		aiCfg:      aiCfg,
		cards:      cards,
		groups:     groups,
		worldviews: worldviews,
		scenarios:  scenarios,
		rels:       rels,
		logger:     logger.Named("generation"),
	}
}

// resolve validates the model choice and ensures a key is available.
func (s *generationService) resolve(req GenerationRequest) (string, error) {
	if !s.aiCfg.IsConfigured() && req.APIKey == "" {
		return "", ErrKeyMissing
	}
	model := req.Model
	if model == "" {
		model = s.aiCfg.DefaultModel()
	}
	if !s.aiCfg.AllowsModel(model) {
		return "", fmt.Errorf("%w: unknown model %q", apperrors.ErrValidation, req.Model)
	}
	return model, nil
}

func (s *generationService) generateText(ctx context.Context, req GenerationRequest, prompt string) (string, error) {
	model, err := s.resolve(req)
	if err != nil {
		return "", err
	}
	return s.generator.Generate(ctx, llm.Request{
		Prompt: prompt,
		Model:  model,
		APIKey: req.APIKey,
	})
}

func (s *generationService) generateJSON(ctx context.Context, req GenerationRequest, prompt string) (string, error) {
	model, err := s.resolve(req)
	if err != nil {
		return "", err
	}
	return s.generator.Generate(ctx, llm.Request{
		Prompt:     prompt,
		Model:      model,
		APIKey:     req.APIKey,
		ExpectJSON: true,
	})
}

func (s *generationService) GenerateNewWorldview(ctx context.Context, req GenerationRequest, keywords string) (string, error) {
	if keywords == "" {
		return "", apperrors.ErrValidation
	}
	return s.generateText(ctx, req, prompts.NewWorldview(keywords))
}

func (s *generationService) EditWorldview(ctx context.Context, req GenerationRequest, keywords, existingContent string) (string, error) {
	return s.generateText(ctx, req, prompts.EditWorldview(keywords, existingContent))
}

func (s *generationService) GenerateCharacter(ctx context.Context, req GenerationRequest, projectID string, opts CharacterGenOptions) (*GeneratedCharacter, error) {
	if opts.Keywords == "" {
		return nil, apperrors.ErrValidation
	}

	worldview, err := s.worldviews.GetWorldview(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var wvCards []prompts.ContextCard
	if len(opts.WorldviewCardIDs) > 0 {
		cards, err := s.worldviews.ListCardsByIDs(ctx, projectID, opts.WorldviewCardIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range cards {
			wvCards = append(wvCards, prompts.ContextCard{Name: c.Title, Description: deref(c.Content)})
		}
	}

	var existing []prompts.ContextCard
	if len(opts.CharacterIDs) > 0 {
		cards, err := s.cards.ListByIDs(ctx, projectID, opts.CharacterIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range cards {
			existing = append(existing, prompts.ContextCard{Name: c.Name, Description: deref(c.Description)})
		}
	}

	prompt := prompts.GenerateCharacter(prompts.GenerateCharacterParams{
		Keywords:          opts.Keywords,
		WorldviewContext:  deref(worldview.Content),
		WorldviewLevel:    prompts.ParseLevel(opts.WorldviewLevel),
		WorldviewCards:    wvCards,
		ExistingCharacter: existing,
	})

	raw, err := s.generateJSON(ctx, req, prompt)
	if err != nil {
		return nil, err
	}
	character, err := llm.ParseJSONResponse[GeneratedCharacter](raw)
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (s *generationService) EditCharacterCards(ctx context.Context, req GenerationRequest, projectID, cardID string, opts CardEditOptions) (*UpdatedCharacterCards, error) {
	// Collect the edited card plus every explicitly selected card and the
	// contents of selected groups.
	idSet := map[string]struct{}{cardID: {}}
	for _, id := range opts.SelectedCardIDs {
		idSet[id] = struct{}{}
	}
	for _, groupID := range opts.SelectedGroupIDs {
		cards, err := s.cards.ListByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		for _, c := range cards {
			idSet[c.ID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	cards, err := s.cards.ListByIDs(ctx, projectID, ids)
	if err != nil {
		return nil, err
	}
	editedName := ""
	for _, c := range cards {
		if c.ID == cardID {
			editedName = c.Name
		}
	}
	if editedName == "" {
		return nil, apperrors.ErrNotFound
	}

	worldview, err := s.worldviews.GetWorldview(ctx, projectID)
	if err != nil {
		return nil, err
	}

	contextJSON, err := json.MarshalIndent(map[string]any{
		"worldview": map[string]any{"content": deref(worldview.Content)},
		"cards":     cards,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal edit context: %w", err)
	}

	prompt := prompts.EditCharacterCards(prompts.EditCharacterCardsParams{
		EditedCardName:     editedName,
		EditRelated:        opts.EditRelated,
		HasWorldview:       deref(worldview.Content) != "",
		WorldviewLevel:     prompts.ParseLevel(opts.WorldviewLevel),
		ProjectContextJSON: string(contextJSON),
		PromptText:         opts.PromptText,
	})

	raw, err := s.generateJSON(ctx, req, prompt)
	if err != nil {
		return nil, err
	}
	result, err := llm.ParseJSONResponse[UpdatedCharacterCards](raw)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *generationService) EditWorldviewCards(ctx context.Context, req GenerationRequest, projectID, cardID string, opts CardEditOptions) (*UpdatedWorldviewCards, error) {
	idSet := map[string]struct{}{cardID: {}}
	for _, id := range opts.SelectedCardIDs {
		idSet[id] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	cards, err := s.worldviews.ListCardsByIDs(ctx, projectID, ids)
	if err != nil {
		return nil, err
	}
	editedTitle := ""
	for _, c := range cards {
		if c.ID == cardID {
			editedTitle = c.Title
		}
	}
	if editedTitle == "" {
		return nil, apperrors.ErrNotFound
	}

	worldview, err := s.worldviews.GetWorldview(ctx, projectID)
	if err != nil {
		return nil, err
	}

	cardsJSON, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal worldview card context: %w", err)
	}

	prompt := prompts.EditWorldviewCards(prompts.EditWorldviewCardsParams{
		EditedCardTitle:  editedTitle,
		EditRelated:      opts.EditRelated,
		MainWorldview:    deref(worldview.Content),
		RelatedCardsJSON: string(cardsJSON),
		PromptText:       opts.PromptText,
		WorldviewLevel:   prompts.ParseLevel(opts.WorldviewLevel),
	})

	raw, err := s.generateJSON(ctx, req, prompt)
	if err != nil {
		return nil, err
	}
	result, err := llm.ParseJSONResponse[UpdatedWorldviewCards](raw)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *generationService) GenerateDraft(ctx context.Context, req GenerationRequest, projectID, scenarioID string, characterIDs []string, plotPointCount int) (*models.Scenario, error) {
	if plotPointCount <= 0 {
		plotPointCount = 10
	}

	scenario, err := s.scenarios.Get(ctx, projectID, scenarioID)
	if err != nil {
		return nil, err
	}
	worldview, err := s.worldviews.GetWorldview(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByIDs(ctx, projectID, characterIDs)
	if err != nil {
		return nil, err
	}
	characters := make([]prompts.ContextCard, 0, len(cards))
	for _, c := range cards {
		characters = append(characters, prompts.ContextCard{Name: c.Name, Description: deref(c.Description)})
	}

	prompt := prompts.PlotDraft(prompts.PlotDraftParams{
		WorldviewContent: deref(worldview.Content),
		Themes:           scenario.Themes,
		Characters:       characters,
		Summary:          deref(scenario.Summary),
		PlotPointCount:   plotPointCount,
	})

	raw, err := s.generateJSON(ctx, req, prompt)
	if err != nil {
		return nil, err
	}
	envelope, err := llm.ParseJSONResponse[plotDraftEnvelope](raw)
	if err != nil {
		return nil, err
	}

	points := make([]models.PlotPoint, 0, len(envelope.PlotPoints))
	for _, p := range envelope.PlotPoints {
		content := p.Content
		points = append(points, models.PlotPoint{
			ID:      ident.New("plot"),
			Title:   p.Title,
			Content: &content,
		})
	}

	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		return s.scenarios.ReplacePlotPoints(ctx, scenarioID, points)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist plot draft: %w", err)
	}

	scenario.PlotPoints, err = s.scenarios.ListPlotPoints(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *generationService) EditPlotPoint(ctx context.Context, req GenerationRequest, projectID, plotPointID, userPrompt string, characterIDs []string) (*models.PlotPoint, error) {
	point, err := s.scenarios.GetPlotPointScoped(ctx, projectID, plotPointID)
	if err != nil {
		return nil, err
	}
	scenario, err := s.scenarios.Get(ctx, projectID, point.ScenarioID)
	if err != nil {
		return nil, err
	}
	allPoints, err := s.scenarios.ListPlotPoints(ctx, point.ScenarioID)
	if err != nil {
		return nil, err
	}

	var story strings.Builder
	for i, p := range allPoints {
		fmt.Fprintf(&story, "%d. %s: %s\n", i+1, p.Title, deref(p.Content))
	}

	cards, err := s.cards.ListByIDs(ctx, projectID, characterIDs)
	if err != nil {
		return nil, err
	}
	characters := make([]prompts.ContextCard, 0, len(cards))
	for _, c := range cards {
		characters = append(characters, prompts.ContextCard{Name: c.Name, Description: deref(c.Description)})
	}

	prompt := prompts.EditPlotPoint(prompts.EditPlotPointParams{
		Summary:          deref(scenario.Summary),
		Characters:       characters,
		FullStoryContext: story.String(),
		PointTitle:       point.Title,
		PointContent:     deref(point.Content),
		UserPrompt:       userPrompt,
	})

	raw, err := s.generateJSON(ctx, req, prompt)
	if err != nil {
		return nil, err
	}
	edit, err := llm.ParseJSONResponse[plotPointEdit](raw)
	if err != nil {
		return nil, err
	}

	update := models.PlotPointUpdate{}
	if edit.Title != "" {
		update.Title = &edit.Title
	}
	if edit.Content != "" {
		update.Content = &edit.Content
	}

	err = s.db.RunInTx(ctx, func(ctx context.Context) error {
		return s.scenarios.UpdatePlotPoint(ctx, projectID, plotPointID, update)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist plot point edit: %w", err)
	}

	return s.scenarios.GetPlotPointScoped(ctx, projectID, plotPointID)
}

func (s *generationService) SuggestRelationship(ctx context.Context, req GenerationRequest, projectID string, opts RelationshipSuggestOptions) (*RelationshipSuggestion, error) {
	cards, err := s.cards.ListByIDs(ctx, projectID, []string{opts.SourceCharacterID, opts.TargetCharacterID})
	if err != nil {
		return nil, err
	}
	var source, target *models.Card
	for i := range cards {
		switch cards[i].ID {
		case opts.SourceCharacterID:
			source = &cards[i]
		case opts.TargetCharacterID:
			target = &cards[i]
		}
	}
	if source == nil || target == nil {
		return nil, apperrors.ErrNotFound
	}

	params := prompts.SuggestRelationshipParams{
		Source:   profileOf(source),
		Target:   profileOf(target),
		Tendency: opts.Tendency,
		Keyword:  opts.Keyword,
	}

	reverse, err := s.rels.GetReverse(ctx, projectID, opts.SourceCharacterID, opts.TargetCharacterID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if reverse != nil {
		params.Reverse = &prompts.ReverseRelationship{
			Type:        reverse.Type,
			Description: deref(reverse.Description),
		}
	}

	raw, err := s.generateJSON(ctx, req, prompts.SuggestRelationship(params))
	if err != nil {
		return nil, err
	}
	suggestion, err := llm.ParseJSONResponse[RelationshipSuggestion](raw)
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (s *generationService) HighlightNames(ctx context.Context, req GenerationRequest, projectID, cardID, textContent string) (string, error) {
	card, err := s.cards.GetScoped(ctx, projectID, cardID)
	if err != nil {
		return "", err
	}

	all, err := s.cards.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	seen := make(map[string]struct{})
	var others []string
	for _, c := range all {
		if c.ID == cardID {
			continue
		}
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		others = append(others, c.Name)
	}

	return s.generateText(ctx, req, prompts.HighlightNames(card.Name, others, textContent))
}

func profileOf(c *models.Card) prompts.CharacterProfile {
	return prompts.CharacterProfile{
		Name:              c.Name,
		Description:       deref(c.Description),
		Goal:              c.Goal,
		Personality:       c.Personality,
		IntroductionStory: deref(c.IntroductionStory),
	}
}

var _ GenerationService = (*generationService)(nil)
