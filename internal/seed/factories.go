// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"rawabit/internal/models"
	"rawabit/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123456"

// Emojis is the palette seeded reactions pick from.
var Emojis = []string{"❤️", "👍", "😂", "😮", "😢", "🔥"}

var (
	arabicTitles = []string{
		"تأملات في الصباح", "رحلة إلى الجبال", "كتاب غيّر حياتي", "فكرة لمشروع صغير",
		"سؤال عن البرمجة", "منتج جديد للبيع", "حقيقة علمية مدهشة", "صورة من المدينة القديمة",
	}
	arabicWords = []string{
		"سلام", "كتاب", "قلم", "بيت", "شمس", "قمر", "بحر", "صديق", "مدرسة", "طريق",
	}
	arabicSentences = []string{
		"العلم نور والجهل ظلام", "من جد وجد ومن زرع حصد", "الصبر مفتاح الفرج",
		"خير الكلام ما قل ودل", "الوقت كالسيف إن لم تقطعه قطعك",
	}
	categories = []string{"تقنية", "ثقافة", "رياضة", "سفر", "طعام", "علوم"}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db      *gorm.DB
	opts    Options
	rng     *rand.Rand
	friends repository.FriendRepository
	chat    repository.ChatRepository
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	f := &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404: acceptable for seeding
		nextID: 1000,
	}
	if db != nil {
		f.friends = repository.NewFriendRepository(db)
		f.chat = repository.NewChatRepository(db)
	}
	return f
}

func (f *Factory) pick(list []string) string {
	return list[f.rng.Intn(len(list))]
}

func (f *Factory) backdate() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	return time.Now().Add(-time.Duration(f.rng.Intn(maxDays))*24*time.Hour -
		time.Duration(f.rng.Intn(24))*time.Hour -
		time.Duration(f.rng.Intn(60))*time.Minute)
}

func (f *Factory) assignID() uint {
	f.nextID++
	return f.nextID
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Bio:       gofakeit.Sentence(10),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:      "member",
	}
	if len(user.Username) > 30 {
		user.Username = user.Username[:30]
	}

	if f.opts.SkipBcrypt {
		user.Password = DefaultPassword
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		user.ID = f.assignID()
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildContent constructs a content item of the given kind with the
// kind-specific fields populated, without persisting it.
func (f *Factory) BuildContent(author *models.User, kind models.ContentKind, overrides ...func(*models.Content)) *models.Content {
	c := &models.Content{
		Kind:      kind,
		Title:     f.pick(arabicTitles),
		Body:      gofakeit.Paragraph(1, 3, 8, "\n"),
		Category:  f.pick(categories),
		AuthorID:  author.ID,
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Views:     int64(f.rng.Intn(500)),
		CreatedAt: f.backdate(),
	}

	switch kind {
	case models.KindBook:
		pages := gofakeit.Number(60, 900)
		c.Pages = &pages
		c.Attributes = datatypes.JSONMap{"author": gofakeit.Name(), "isbn": gofakeit.Numerify("978##########")}
	case models.KindVideo:
		seconds := gofakeit.Number(30, 3600)
		c.DurationSeconds = &seconds
	case models.KindIdea:
		target := float64(gofakeit.Number(1000, 50000))
		c.TargetAmount = &target
	case models.KindQuestion:
		answered := gofakeit.Bool()
		c.Answered = &answered
		c.ImageURL = ""
	case models.KindAd, models.KindProduct:
		price := gofakeit.Price(5, 2000)
		c.Price = &price
		c.Currency = f.pick([]string{"SAR", "USD", "EGP", "AED"})
	case models.KindTruth:
		c.Attributes = datatypes.JSONMap{"source": gofakeit.URL()}
	}

	for _, override := range overrides {
		override(c)
	}
	return c
}

// CreateContentBatch persists multiple content items in a single DB call.
func (f *Factory) CreateContentBatch(items []*models.Content) error {
	if len(items) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, c := range items {
			c.ID = f.assignID()
		}
		log.Printf("[dry-run] CreateContentBatch: %d items (no DB write)", len(items))
		return nil
	}
	return f.db.CreateInBatches(items, 100).Error
}

// CreateLexiconEntry persists a word or sentence with its English translation.
func (f *Factory) CreateLexiconEntry(author *models.User, kind models.LexiconKind) (*models.LexiconEntry, error) {
	e := &models.LexiconEntry{
		Kind:        kind,
		Language:    "ar",
		AuthorID:    author.ID,
		Translation: gofakeit.Word(),
	}
	if kind == models.LexiconWord {
		e.Text = f.pick(arabicWords)
	} else {
		e.Text = f.pick(arabicSentences)
		e.Translation = gofakeit.Sentence(6)
	}

	if f.opts.DryRun {
		e.ID = f.assignID()
		return e, nil
	}
	if err := f.db.Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// CreateComment persists a comment by user on the given target.
func (f *Factory) CreateComment(user *models.User, kind models.TargetKind, targetID uint, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:     user.ID,
		TargetKind: kind,
		TargetID:   targetID,
		Body:       gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(comment)
	}
	if f.opts.DryRun {
		comment.ID = f.assignID()
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction records user's reaction on a target, replacing any earlier one.
func (f *Factory) CreateReaction(user *models.User, kind models.TargetKind, targetID uint, emoji string) error {
	if f.opts.DryRun {
		return nil
	}
	_, err := repository.NewReactionRepository(f.db).Upsert(context.Background(), &models.Like{
		UserID:     user.ID,
		TargetKind: kind,
		TargetID:   targetID,
		Emoji:      emoji,
	})
	return err
}

// CreateShare persists a share of a target by user.
func (f *Factory) CreateShare(user *models.User, kind models.TargetKind, targetID uint) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Share{UserID: user.ID, TargetKind: kind, TargetID: targetID}).Error
}

// CreateFriendship runs the request and accept transitions so both
// friendship directions exist.
func (f *Factory) CreateFriendship(sender, receiver *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	ctx := context.Background()
	if _, err := f.friends.CreateRequest(ctx, sender.ID, receiver.ID, nil); err != nil {
		return err
	}
	return f.friends.AcceptRequest(ctx, sender.ID, receiver.ID, nil)
}

// CreateFriendRequest leaves a pending request from sender to receiver.
func (f *Factory) CreateFriendRequest(sender, receiver *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	_, err := f.friends.CreateRequest(context.Background(), sender.ID, receiver.ID, nil)
	return err
}

// DirectConversation returns the direct conversation between a and b, creating it if needed.
func (f *Factory) DirectConversation(a, b *models.User) (*models.Conversation, error) {
	if f.opts.DryRun {
		return &models.Conversation{ID: f.assignID(), Kind: models.ConversationDirect, Key: models.DirectConversationKey(a.ID, b.ID)}, nil
	}
	return f.chat.GetOrCreateConversation(context.Background(), &models.Conversation{
		Kind:      models.ConversationDirect,
		Key:       models.DirectConversationKey(a.ID, b.ID),
		CreatedBy: a.ID,
	}, []uint{a.ID, b.ID})
}

// GroupConversation returns the shared group chat, creating it if needed.
func (f *Factory) GroupConversation(title string) (*models.Conversation, error) {
	if f.opts.DryRun {
		return &models.Conversation{ID: f.assignID(), Kind: models.ConversationGroup, Key: models.GroupConversationKey, Title: title}, nil
	}
	return f.chat.GetOrCreateConversation(context.Background(), &models.Conversation{
		Kind:  models.ConversationGroup,
		Key:   models.GroupConversationKey,
		Title: title,
	}, nil)
}

// CreateMessage constructs and persists a sample `models.Message` in the
// provided conversation from the provided sender.
func (f *Factory) CreateMessage(conversation *models.Conversation, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       sender.ID,
		Body:           gofakeit.Sentence(10),
		MessageType:    "text",
		CreatedAt:      f.backdate(),
	}
	for _, override := range overrides {
		override(message)
	}
	if f.opts.DryRun {
		message.ID = f.assignID()
		return message, nil
	}
	if err := f.chat.CreateMessage(context.Background(), message); err != nil {
		return nil, err
	}
	return message, nil
}
