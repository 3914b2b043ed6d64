package service

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"rawabit/internal/cache"
	"rawabit/internal/featureflags"
	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/observability"
	"rawabit/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const maxEmojiBytes = 16

// ReactionService aggregates and records emoji reactions on any target kind.
type ReactionService struct {
	reactions     repository.ReactionRepository
	users         repository.UserRepository
	targets       targets
	notifications *NotificationService
	flags         *featureflags.Manager
}

func NewReactionService(
	reactions repository.ReactionRepository,
	contents repository.ContentRepository,
	lexicon repository.LexiconRepository,
	users repository.UserRepository,
	notifications *NotificationService,
	flags *featureflags.Manager,
) *ReactionService {
	return &ReactionService{
		reactions:     reactions,
		users:         users,
		targets:       targets{contents: contents, lexicon: lexicon},
		notifications: notifications,
		flags:         flags,
	}
}

// Summarize returns one summary per requested id, including ids nobody
// reacted to. Uncached ids are loaded with a single query.
func (s *ReactionService) Summarize(ctx context.Context, kind models.TargetKind, ids []uint) (map[uint]models.ReactionSummary, error) {
	ctx, span := observability.StartSpan(ctx, "service", "reactions.summarize",
		attribute.String("target_kind", string(kind)),
		attribute.Int("ids", len(ids)),
	)
	out, err := s.summarize(ctx, kind, ids)
	span.End(err)
	return out, err
}

func (s *ReactionService) summarize(ctx context.Context, kind models.TargetKind, ids []uint) (map[uint]models.ReactionSummary, error) {
	ids = uniqueIDs(ids)
	out := make(map[uint]models.ReactionSummary, len(ids))
	useCache := s.flags.Enabled(featureflags.ReactionCache, 0)

	missing := ids
	if useCache {
		missing = missing[:0:0]
		for _, id := range ids {
			var sum models.ReactionSummary
			if found, err := cache.GetJSON(ctx, cache.ReactionsKey(string(kind), id), &sum); err == nil && found {
				observability.ReactionCacheResults.WithLabelValues("hit").Inc()
				out[id] = normalizeSummary(sum)
				continue
			}
			observability.ReactionCacheResults.WithLabelValues("miss").Inc()
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	rows, err := s.reactions.Rows(ctx, kind, missing)
	if err != nil {
		return nil, err
	}
	for id, sum := range FoldReactions(missing, rows) {
		out[id] = sum
		if useCache {
			_ = cache.SetJSON(ctx, cache.ReactionsKey(string(kind), id), sum, cache.ReactionsTTL)
		}
	}
	return out, nil
}

// SummarizeOne is Summarize for a single target.
func (s *ReactionService) SummarizeOne(ctx context.Context, kind models.TargetKind, id uint) (models.ReactionSummary, error) {
	all, err := s.Summarize(ctx, kind, []uint{id})
	if err != nil {
		return models.ReactionSummary{}, err
	}
	return all[id], nil
}

// FoldReactions groups rows by target and emoji. Every id in ids gets an
// entry; rows for id 0 or for ids not requested are ignored. Summary entries
// are ordered by count, then emoji.
func FoldReactions(ids []uint, rows []models.ReactionRow) map[uint]models.ReactionSummary {
	out := make(map[uint]models.ReactionSummary, len(ids))
	for _, id := range ids {
		if id != 0 {
			out[id] = models.EmptyReactionSummary()
		}
	}

	for _, row := range rows {
		sum, ok := out[row.TargetID]
		if !ok {
			continue
		}
		u := models.User{ID: row.UserID, Username: row.Username, FirstName: row.FirstName, LastName: row.LastName}
		sum.ByEmoji[row.Emoji] = append(sum.ByEmoji[row.Emoji], models.ReactionUser{
			ID:          row.UserID,
			Username:    row.Username,
			DisplayName: u.DisplayName(),
			Avatar:      row.Avatar,
		})
		sum.Total++
		out[row.TargetID] = sum
	}

	for id, sum := range out {
		for emoji, users := range sum.ByEmoji {
			sum.Summary = append(sum.Summary, models.EmojiSummary{Emoji: emoji, Count: len(users), Users: users})
		}
		sort.Slice(sum.Summary, func(i, j int) bool {
			if sum.Summary[i].Count != sum.Summary[j].Count {
				return sum.Summary[i].Count > sum.Summary[j].Count
			}
			return sum.Summary[i].Emoji < sum.Summary[j].Emoji
		})
		out[id] = sum
	}
	return out
}

// React sets the user's emoji on the target, replacing any earlier one.
func (s *ReactionService) React(ctx context.Context, userID uint, kind models.TargetKind, id uint, emoji string) (models.ReactionSummary, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" || len(emoji) > maxEmojiBytes || !utf8.ValidString(emoji) {
		return models.ReactionSummary{}, models.NewValidationError(i18n.InvalidEmoji)
	}
	ownerID, err := s.targets.owner(ctx, kind, id)
	if err != nil {
		return models.ReactionSummary{}, err
	}

	previous, err := s.reactions.Upsert(ctx, &models.Like{UserID: userID, TargetKind: kind, TargetID: id, Emoji: emoji})
	if err != nil {
		return models.ReactionSummary{}, err
	}
	cache.InvalidateReactions(ctx, string(kind), id)

	outcome := "added"
	switch previous {
	case "":
	case emoji:
		outcome = "unchanged"
	default:
		outcome = "changed"
	}
	observability.ReactionsTotal.WithLabelValues(string(kind), outcome).Inc()

	if previous == "" && ownerID != userID {
		if actor, err := s.users.GetByID(ctx, userID); err == nil {
			s.notifications.Notify(ctx, models.NewNotification(models.NotificationReaction, ownerID, actor, kind, id,
				map[string]interface{}{models.MetaEmoji: emoji}))
		}
	}
	return s.SummarizeOne(ctx, kind, id)
}

// Unreact removes the user's reaction. Removing a missing reaction is not an error.
func (s *ReactionService) Unreact(ctx context.Context, userID uint, kind models.TargetKind, id uint) (models.ReactionSummary, error) {
	if _, err := s.targets.owner(ctx, kind, id); err != nil {
		return models.ReactionSummary{}, err
	}
	removed, err := s.reactions.Delete(ctx, userID, kind, id)
	if err != nil {
		return models.ReactionSummary{}, err
	}
	if removed {
		cache.InvalidateReactions(ctx, string(kind), id)
		observability.ReactionsTotal.WithLabelValues(string(kind), "removed").Inc()
	}
	return s.SummarizeOne(ctx, kind, id)
}

// Mine returns the viewer's emoji on the target, or "".
func (s *ReactionService) Mine(ctx context.Context, userID uint, kind models.TargetKind, id uint) (string, error) {
	return s.reactions.UserEmoji(ctx, userID, kind, id)
}

func normalizeSummary(sum models.ReactionSummary) models.ReactionSummary {
	if sum.Summary == nil {
		sum.Summary = []models.EmojiSummary{}
	}
	if sum.ByEmoji == nil {
		sum.ByEmoji = map[string][]models.ReactionUser{}
	}
	return sum
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
