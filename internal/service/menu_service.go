package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/kondate/internal/domain"
	"github.com/vbonduro/kondate/internal/suggest"
)

// foodRepository is the subset of store.FoodStore that MenuService requires.
type foodRepository interface {
	Create(ctx context.Context, item domain.NewFoodItem) (*domain.FoodItem, error)
	List(ctx context.Context) ([]*domain.FoodItem, error)
	ListByNameContains(ctx context.Context, substr string) ([]*domain.FoodItem, error)
	DeleteByNameContains(ctx context.Context, substr string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type MenuService struct {
	foods     foodRepository
	generator suggest.Generator
	parser    suggest.IngredientParser
	logger    *slog.Logger
}

// NewMenuService wires the inventory to a suggestion generator. A nil
// generator means no AI backend is configured; suggestions then fall back to
// suggest.PlaceholderSuggestion.
func NewMenuService(
	foods foodRepository,
	generator suggest.Generator,
	parser suggest.IngredientParser,
	logger *slog.Logger,
) *MenuService {
	if parser == nil {
		parser = suggest.LabelParser{}
	}
	return &MenuService{
		foods:     foods,
		generator: generator,
		parser:    parser,
		logger:    logger,
	}
}

func (s *MenuService) AddFood(ctx context.Context, in FoodInput) (*domain.FoodItem, error) {
	item, err := in.Validate()
	if err != nil {
		return nil, err
	}

	created, err := s.foods.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info("food item added", "id", created.ID, "name", created.Name, "expiry", created.ExpiryDate.Format(domain.DateLayout))
	return created, nil
}

func (s *MenuService) ListFoods(ctx context.Context) ([]*domain.FoodItem, error) {
	return s.foods.List(ctx)
}

// RemoveFood deletes every item whose name contains substr.
func (s *MenuService) RemoveFood(ctx context.Context, substr string) (int64, error) {
	substr = strings.TrimSpace(substr)
	if substr == "" {
		verr := &ValidationError{}
		verr.add("name", "name is required")
		return 0, verr
	}

	deleted, err := s.foods.DeleteByNameContains(ctx, substr)
	if err != nil {
		return 0, err
	}
	s.logger.Info("food items removed", "match", substr, "deleted", deleted)
	return deleted, nil
}

// Reset deletes the whole inventory.
func (s *MenuService) Reset(ctx context.Context) (int64, error) {
	deleted, err := s.foods.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("inventory reset", "deleted", deleted)
	return deleted, nil
}

type SuggestionSource string

const (
	SourceAI          SuggestionSource = "ai"
	SourcePlaceholder SuggestionSource = "placeholder"
	SourceFailed      SuggestionSource = "failed"
)

// Suggestion is the text shown to the user. When the generator failed, Text
// holds suggest.FailedSuggestion and Err the cause for display.
type Suggestion struct {
	Text   string
	Source SuggestionSource
	Err    error
}

// Suggest builds a prompt from the current inventory and asks the generator
// for a menu. Generator failures never surface as an error return; they
// degrade to a fallback text on the Suggestion.
func (s *MenuService) Suggest(ctx context.Context, prefs suggest.Preferences) (*Suggestion, error) {
	items, err := s.foods.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	if s.generator == nil {
		s.logger.Warn("no suggestion backend configured, using placeholder")
		return &Suggestion{Text: suggest.PlaceholderSuggestion, Source: SourcePlaceholder}, nil
	}

	prompt := suggest.BuildPrompt(items, prefs)
	s.logger.Info("suggestion requested", "items", len(items))
	s.logger.Debug("suggestion prompt", "prompt", prompt)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("suggestion generation failed", "error", err)
		return &Suggestion{Text: suggest.FailedSuggestion, Source: SourceFailed, Err: err}, nil
	}

	s.logger.Info("suggestion generated", "bytes", len(text))
	return &Suggestion{Text: text, Source: SourceAI}, nil
}

// Ingredients reads the consumed ingredient names from a suggestion. An empty
// result is reported as ErrNoIngredients.
func (s *MenuService) Ingredients(text string) ([]string, error) {
	names := s.parser.Parse(text)
	if len(names) == 0 {
		return nil, ErrNoIngredients
	}
	return names, nil
}

// Match lists the stored items a single ingredient name would remove.
type Match struct {
	Name  string
	Items []*domain.FoodItem
}

// Preview shows what Consume would delete without deleting anything.
func (s *MenuService) Preview(ctx context.Context, names []string) ([]Match, error) {
	matches := make([]Match, 0, len(names))
	for _, name := range names {
		items, err := s.foods.ListByNameContains(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to preview %q: %w", name, err)
		}
		matches = append(matches, Match{Name: name, Items: items})
	}
	return matches, nil
}

type Deletion struct {
	Name  string
	Count int64
}

type ConsumeResult struct {
	Deletions []Deletion
	Total     int64
}

// Consume deletes, for each name, every item whose name contains it. On a
// storage error the deletions done so far are returned with the error.
func (s *MenuService) Consume(ctx context.Context, names []string) (*ConsumeResult, error) {
	if len(names) == 0 {
		return nil, ErrNoIngredients
	}

	result := &ConsumeResult{Deletions: make([]Deletion, 0, len(names))}
	for _, name := range names {
		count, err := s.foods.DeleteByNameContains(ctx, name)
		if err != nil {
			return result, fmt.Errorf("failed to consume %q: %w", name, err)
		}
		result.Deletions = append(result.Deletions, Deletion{Name: name, Count: count})
		result.Total += count
	}

	s.logger.Info("ingredients consumed", "names", len(names), "deleted", result.Total)
	return result, nil
}
