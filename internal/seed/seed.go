package seed

import (
	"fmt"
	"log"
	"sort"

	"rawabit/internal/database"
	"rawabit/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers       int
	ItemsPerKind   int
	LexiconPerKind int
	FriendsPerUser int
	// MessagesPerChat is the number of messages seeded in each direct
	// conversation and in the group chat.
	MessagesPerChat int
	GroupTitle      string
	ShouldClean     bool
	SkipBcrypt      bool
	DryRun          bool
	MaxDays         int
	BatchSize       int
}

// DefaultOptions is the configuration used by `rawabitctl seed` without flags.
func DefaultOptions() Options {
	return Options{
		NumUsers:        30,
		ItemsPerKind:    20,
		LexiconPerKind:  25,
		FriendsPerUser:  4,
		MessagesPerChat: 8,
		GroupTitle:      "الدردشة العامة",
		ShouldClean:     true,
		MaxDays:         90,
		BatchSize:       100,
	}
}

// Summary reports how many rows a run created.
type Summary struct {
	Users       int
	Content     map[models.ContentKind]int
	Lexicon     int
	Friendships int
	Pending     int
	Comments    int
	Reactions   int
	Shares      int
	Messages    int
}

// Seeder populates a database with a connected social graph.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder over db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// contentWeights biases the generated feed toward everyday posts.
var contentWeights = map[models.ContentKind]int{
	models.KindPost:     4,
	models.KindImage:    2,
	models.KindVideo:    2,
	models.KindQuestion: 2,
	models.KindBook:     1,
	models.KindIdea:     1,
	models.KindTruth:    1,
	models.KindAd:       1,
	models.KindProduct:  1,
}

// computeCounts splits total across kinds proportionally to weights using
// the largest remainder method, so the parts always sum to total.
func computeCounts(total int, weights map[models.ContentKind]int) map[models.ContentKind]int {
	out := make(map[models.ContentKind]int, len(weights))
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if total <= 0 || sum == 0 {
		return out
	}

	type remainder struct {
		kind models.ContentKind
		rem  int
	}
	rems := make([]remainder, 0, len(weights))
	assigned := 0
	for _, kind := range models.ContentKinds {
		w, ok := weights[kind]
		if !ok {
			continue
		}
		out[kind] = total * w / sum
		assigned += out[kind]
		rems = append(rems, remainder{kind, total * w % sum})
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].rem > rems[j].rem })
	for i := 0; assigned < total; i++ {
		out[rems[i%len(rems)].kind]++
		assigned++
	}
	return out
}

// ClearAll deletes every row of every persistent table, children first.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		return nil
	}
	log.Println("Clearing existing data...")
	tables := database.PersistentModels()
	tx := s.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for i := len(tables) - 1; i >= 0; i-- {
		if err := tx.Unscoped().Delete(tables[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", tables[i], err)
		}
	}
	return nil
}

// Run seeds users, their friend graph, content of every kind, lexicon
// entries, engagement on all of it, and conversations.
func (s *Seeder) Run() (*Summary, error) {
	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	sum := &Summary{Content: map[models.ContentKind]int{}}
	users, err := s.SeedSocialMesh(s.opts.NumUsers, sum)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return sum, nil
	}

	total := s.opts.ItemsPerKind * len(models.ContentKinds)
	if err := s.SeedEngagement(users, total, sum); err != nil {
		return nil, err
	}
	if err := s.SeedConversations(users, sum); err != nil {
		return nil, err
	}

	log.Printf("Seeded %d users, %d lexicon entries, %d friendships, %d comments, %d reactions, %d messages",
		sum.Users, sum.Lexicon, sum.Friendships, sum.Comments, sum.Reactions, sum.Messages)
	return sum, nil
}

// SeedSocialMesh creates n users and links them in a ring with
// FriendsPerUser/2 neighbours on each side. Every third user also has an
// outstanding request to someone outside that neighbourhood.
func (s *Seeder) SeedSocialMesh(n int, sum *Summary) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	if n < 2 {
		return users, nil
	}

	span := s.opts.FriendsPerUser / 2
	if span < 1 {
		span = 1
	}
	if span > (n-1)/2 {
		span = (n - 1) / 2
	}
	for i := range users {
		for d := 1; d <= span; d++ {
			if err := s.factory.CreateFriendship(users[i], users[(i+d)%n]); err != nil {
				return nil, fmt.Errorf("create friendship: %w", err)
			}
			sum.Friendships++
		}
	}

	if n > 2*span+2 {
		for i := 0; i < n; i += 3 {
			target := users[(i+span+1)%n]
			if err := s.factory.CreateFriendRequest(users[i], target); err != nil {
				return nil, fmt.Errorf("create friend request: %w", err)
			}
			sum.Pending++
		}
	}
	return users, nil
}

// SeedEngagement creates total content items spread across kinds, lexicon
// entries, and comments, reactions and shares from random users.
func (s *Seeder) SeedEngagement(users []*models.User, total int, sum *Summary) error {
	f := s.factory
	counts := computeCounts(total, contentWeights)

	batch := make([]*models.Content, 0, s.opts.BatchSize)
	var created []*models.Content
	flush := func() error {
		if err := f.CreateContentBatch(batch); err != nil {
			return fmt.Errorf("create content: %w", err)
		}
		created = append(created, batch...)
		batch = make([]*models.Content, 0, s.opts.BatchSize)
		return nil
	}
	for _, kind := range models.ContentKinds {
		for i := 0; i < counts[kind]; i++ {
			batch = append(batch, f.BuildContent(users[f.rng.Intn(len(users))], kind))
			if len(batch) == s.opts.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		sum.Content[kind] = counts[kind]
	}
	if err := flush(); err != nil {
		return err
	}

	type target struct {
		kind models.TargetKind
		id   uint
	}
	targets := make([]target, 0, len(created)+2*s.opts.LexiconPerKind)
	for _, c := range created {
		targets = append(targets, target{c.Kind.Target(), c.ID})
	}
	for _, kind := range []models.LexiconKind{models.LexiconWord, models.LexiconSentence} {
		for i := 0; i < s.opts.LexiconPerKind; i++ {
			e, err := f.CreateLexiconEntry(users[f.rng.Intn(len(users))], kind)
			if err != nil {
				return fmt.Errorf("create lexicon entry: %w", err)
			}
			targets = append(targets, target{kind.Target(), e.ID})
			sum.Lexicon++
		}
	}

	for _, t := range targets {
		for i, n := 0, f.rng.Intn(4); i < n; i++ {
			if _, err := f.CreateComment(users[f.rng.Intn(len(users))], t.kind, t.id); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			sum.Comments++
		}
		reactors := f.rng.Perm(len(users))[:f.rng.Intn(len(users)+1)]
		for _, idx := range reactors {
			if err := f.CreateReaction(users[idx], t.kind, t.id, f.pick(Emojis)); err != nil {
				return fmt.Errorf("create reaction: %w", err)
			}
			sum.Reactions++
		}
		if t.kind.IsContent() && f.rng.Intn(5) == 0 {
			if err := f.CreateShare(users[f.rng.Intn(len(users))], t.kind, t.id); err != nil {
				return fmt.Errorf("create share: %w", err)
			}
			sum.Shares++
		}
	}
	return nil
}

// SeedConversations opens a direct conversation between each user and their
// next ring neighbour and fills the group chat.
func (s *Seeder) SeedConversations(users []*models.User, sum *Summary) error {
	f := s.factory
	if len(users) >= 2 {
		for i := range users {
			a, b := users[i], users[(i+1)%len(users)]
			if len(users) == 2 && i == 1 {
				break
			}
			conv, err := f.DirectConversation(a, b)
			if err != nil {
				return fmt.Errorf("open conversation: %w", err)
			}
			for m := 0; m < s.opts.MessagesPerChat; m++ {
				sender := a
				if m%2 == 1 {
					sender = b
				}
				if _, err := f.CreateMessage(conv, sender); err != nil {
					return fmt.Errorf("create message: %w", err)
				}
				sum.Messages++
			}
		}
	}

	group, err := f.GroupConversation(s.opts.GroupTitle)
	if err != nil {
		return fmt.Errorf("open group chat: %w", err)
	}
	for m := 0; m < s.opts.MessagesPerChat; m++ {
		if _, err := f.CreateMessage(group, users[f.rng.Intn(len(users))]); err != nil {
			return fmt.Errorf("create group message: %w", err)
		}
		sum.Messages++
	}
	return nil
}
