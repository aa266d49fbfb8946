// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used by tests and local development
// (DB_TYPE=memory). Slices keep insertion order so newest-first sorts stay
// deterministic even when timestamps collide.
type MemoryStore struct {
	mu            sync.RWMutex
	users         []*models.User
	posts         []models.Document
	comments      []*models.Comment
	reports       []*models.Report
	announcements []models.Document
	tags          []*models.Tag
	feedback      []models.Document
	pages         map[string]models.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[string]models.Document),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// --- User methods ---

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, false, nil
		}
	}

	now := time.Now().UTC()
	stored := *user
	stored.ID = primitive.NewObjectID()
	if stored.Role == "" {
		stored.Role = models.RoleUser
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.users = append(s.users, &stored)
	return stored.ID, true, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewUserNotFoundError(email)
}

func (s *MemoryStore) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first: reverse of insertion order.
	users := make([]*models.User, 0, len(s.users))
	for i := len(s.users) - 1; i >= 0; i-- {
		copied := *s.users[i]
		users = append(users, &copied)
	}

	total := int64(len(users))
	lo, hi := pageWindow(len(users), skip, limit)
	return users[lo:hi], total, nil
}

func (s *MemoryStore) SetUserRole(ctx context.Context, id primitive.ObjectID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			user.Role = role
			user.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (s *MemoryStore) SetUserBadge(ctx context.Context, email, badge string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			user.Badge = badge
			user.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return utils.NewUserNotFoundError(email)
}

// --- Post methods ---

func (s *MemoryStore) CreatePost(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared := preparePostDocument(doc)
	id := primitive.NewObjectID()
	prepared["_id"] = id
	s.posts = append(s.posts, prepared)
	return id, nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post["_id"] == id {
			return cloneDocument(post), nil
		}
	}
	return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
}

func (s *MemoryStore) DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, post := range s.posts {
		if post["_id"] == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) ListPosts(ctx context.Context, q PostQuery) ([]models.Document, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Filter, newest-insertion first so stable sorts break timestamp ties
	// the same way Mongo's pipeline order does in practice.
	matched := make([]models.Document, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		post := s.posts[i]
		if q.Tag != "" {
			tag, _ := post[models.PostFieldTag].(string)
			if !strings.EqualFold(tag, q.Tag) {
				continue
			}
		}
		enriched := cloneDocument(post)
		enriched[models.PostFieldTotalVotes] = documentInt(post, models.PostFieldUpvote) -
			documentInt(post, models.PostFieldDownVote)
		enriched[models.PostFieldCommentsCount] = s.countComments(post)
		matched = append(matched, enriched)
	}

	if q.Sort == models.SortPopularity {
		sort.SliceStable(matched, func(i, j int) bool {
			vi := documentInt(matched[i], models.PostFieldTotalVotes)
			vj := documentInt(matched[j], models.PostFieldTotalVotes)
			if vi != vj {
				return vi > vj
			}
			return documentTime(matched[i], models.PostFieldPostTime).
				After(documentTime(matched[j], models.PostFieldPostTime))
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			return documentTime(matched[i], models.PostFieldPostTime).
				After(documentTime(matched[j], models.PostFieldPostTime))
		})
	}

	total := int64(len(matched))
	lo, hi := pageWindow(len(matched), q.Skip, q.Limit)
	return matched[lo:hi], total, nil
}

func (s *MemoryStore) ListPostsByAuthor(ctx context.Context, email string, skip, limit int) ([]models.Document, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Document, 0)
	for i := len(s.posts) - 1; i >= 0; i-- {
		post := s.posts[i]
		if author, _ := post[models.PostFieldAuthorEmail].(string); author == email {
			matched = append(matched, cloneDocument(post))
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return documentTime(matched[i], models.PostFieldPostTime).
			After(documentTime(matched[j], models.PostFieldPostTime))
	})

	total := int64(len(matched))
	lo, hi := pageWindow(len(matched), skip, limit)
	return matched[lo:hi], total, nil
}

func (s *MemoryStore) ApplyVote(ctx context.Context, id primitive.ObjectID, voteType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	field := models.PostFieldDownVote
	if models.IsUpvote(voteType) {
		field = models.PostFieldUpvote
	}

	for _, post := range s.posts {
		if post["_id"] == id {
			post[field] = documentInt(post, field) + 1
			return nil
		}
	}
	return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
}

func (s *MemoryStore) BumpCommentCount(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		if post["_id"] == id {
			post[models.PostFieldCommentsCount] = documentInt(post, models.PostFieldCommentsCount) + 1
			return nil
		}
	}
	return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
}

// countComments is called with the read lock already held.
func (s *MemoryStore) countComments(post models.Document) int {
	id, ok := post["_id"].(primitive.ObjectID)
	if !ok {
		return 0
	}
	hex := id.Hex()
	count := 0
	for _, comment := range s.comments {
		if comment.PostID == hex {
			count++
		}
	}
	return count
}

// --- Comment methods ---

func (s *MemoryStore) CreateComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *comment
	stored.ID = primitive.NewObjectID()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.comments = append(s.comments, &stored)
	return stored.ID, nil
}

func (s *MemoryStore) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, comment := range s.comments {
		if comment.ID == id {
			copied := *comment
			return &copied, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found", nil)
}

func (s *MemoryStore) ListCommentsByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Comment, 0)
	for i := len(s.comments) - 1; i >= 0; i-- {
		if s.comments[i].PostID == postID {
			copied := *s.comments[i]
			matched = append(matched, &copied)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemoryStore) DeleteComment(ctx context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, comment := range s.comments {
		if comment.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// --- Report methods ---

func (s *MemoryStore) CreateReport(ctx context.Context, report *models.Report) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *report
	stored.ID = primitive.NewObjectID()
	if stored.ReportedAt.IsZero() {
		stored.ReportedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, &stored)
	return stored.ID, nil
}

func (s *MemoryStore) ListReportsByPost(ctx context.Context, postID string) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Report, 0)
	for i := len(s.reports) - 1; i >= 0; i-- {
		if s.reports[i].PostID == postID {
			copied := *s.reports[i]
			matched = append(matched, &copied)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ReportedAt.After(matched[j].ReportedAt)
	})
	return matched, nil
}

func (s *MemoryStore) ListReports(ctx context.Context, skip, limit int) ([]models.Document, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enriched := make([]models.Document, 0, len(s.reports))
	for i := len(s.reports) - 1; i >= 0; i-- {
		report := s.reports[i]
		doc := models.Document{
			"_id":        report.ID,
			"postId":     report.PostID,
			"commentId":  report.CommentID,
			"feedback":   report.Feedback,
			"reportedAt": report.ReportedAt,
		}
		for _, comment := range s.comments {
			if comment.ID.Hex() == report.CommentID {
				doc["comment"] = models.Document{
					"_id":         comment.ID,
					"postId":      comment.PostID,
					"userEmail":   comment.UserEmail,
					"userName":    comment.UserName,
					"commentText": comment.CommentText,
					"createdAt":   comment.CreatedAt,
				}
				break
			}
		}
		enriched = append(enriched, doc)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return documentTime(enriched[i], "reportedAt").After(documentTime(enriched[j], "reportedAt"))
	})

	total := int64(len(enriched))
	lo, hi := pageWindow(len(enriched), skip, limit)
	return enriched[lo:hi], total, nil
}

func (s *MemoryStore) DeleteReport(ctx context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, report := range s.reports {
		if report.ID == id {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) DeleteReportsByComment(ctx context.Context, commentID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.reports[:0]
	var deleted int64
	for _, report := range s.reports {
		if report.CommentID == commentID {
			deleted++
			continue
		}
		kept = append(kept, report)
	}
	s.reports = kept
	return deleted, nil
}

// --- Announcement methods ---

func (s *MemoryStore) CreateAnnouncement(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared := cloneDocument(doc)
	delete(prepared, "_id")
	prepared["read"] = false
	if _, ok := prepared["createdAt"]; !ok {
		prepared["createdAt"] = time.Now().UTC()
	}
	id := primitive.NewObjectID()
	prepared["_id"] = id
	s.announcements = append(s.announcements, prepared)
	return id, nil
}

func (s *MemoryStore) ListAnnouncements(ctx context.Context) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	announcements := make([]models.Document, 0, len(s.announcements))
	for i := len(s.announcements) - 1; i >= 0; i-- {
		announcements = append(announcements, cloneDocument(s.announcements[i]))
	}

	sort.SliceStable(announcements, func(i, j int) bool {
		return documentTime(announcements[i], "createdAt").After(documentTime(announcements[j], "createdAt"))
	})
	return announcements, nil
}

func (s *MemoryStore) MarkAnnouncementRead(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, announcement := range s.announcements {
		if announcement["_id"] == id {
			announcement["read"] = true
			return nil
		}
	}
	return utils.NewAppError(utils.ErrNotFound, "Announcement not found", nil)
}

// --- Tag methods ---

func (s *MemoryStore) EnsureTag(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range s.tags {
		if tag.Name == name {
			return false, nil
		}
	}
	s.tags = append(s.tags, &models.Tag{ID: primitive.NewObjectID(), Name: name})
	return true, nil
}

func (s *MemoryStore) ListTags(ctx context.Context) ([]*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]*models.Tag, 0, len(s.tags))
	for _, tag := range s.tags {
		copied := *tag
		tags = append(tags, &copied)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

// --- Feedback methods ---

func (s *MemoryStore) CreateFeedback(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared := cloneDocument(doc)
	delete(prepared, "_id")
	prepared["response"] = false
	prepared["read"] = false
	if _, ok := prepared["createdAt"]; !ok {
		prepared["createdAt"] = time.Now().UTC()
	}
	id := primitive.NewObjectID()
	prepared["_id"] = id
	s.feedback = append(s.feedback, prepared)
	return id, nil
}

func (s *MemoryStore) ListFeedback(ctx context.Context, skip, limit int) ([]models.Document, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedback := make([]models.Document, 0, len(s.feedback))
	for i := len(s.feedback) - 1; i >= 0; i-- {
		feedback = append(feedback, cloneDocument(s.feedback[i]))
	}

	sort.SliceStable(feedback, func(i, j int) bool {
		return documentTime(feedback[i], "createdAt").After(documentTime(feedback[j], "createdAt"))
	})

	total := int64(len(feedback))
	lo, hi := pageWindow(len(feedback), skip, limit)
	return feedback[lo:hi], total, nil
}

func (s *MemoryStore) MarkFeedbackResponded(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.feedback {
		if doc["_id"] == id {
			doc["response"] = true
			doc["respondedAt"] = time.Now().UTC()
			return nil
		}
	}
	return utils.NewAppError(utils.ErrNotFound, "Feedback not found", nil)
}

func (s *MemoryStore) MarkFeedbackRead(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.feedback {
		if doc["_id"] == id {
			doc["read"] = true
			return nil
		}
	}
	return utils.NewAppError(utils.ErrNotFound, "Feedback not found", nil)
}

func (s *MemoryStore) DeleteFeedback(ctx context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.feedback {
		if doc["_id"] == id {
			s.feedback = append(s.feedback[:i], s.feedback[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// --- Static page methods ---

func (s *MemoryStore) UpsertPage(ctx context.Context, id string, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		page = models.Document{"_id": id}
		s.pages[id] = page
	}
	for k, v := range pageUpdate(doc) {
		page[k] = v
	}
	return nil
}

func (s *MemoryStore) PatchPage(ctx context.Context, id string, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		return utils.NewAppError(utils.ErrPageNotFound, "Page not found", nil)
	}
	for k, v := range pageUpdate(doc) {
		page[k] = v
	}
	return nil
}

func (s *MemoryStore) GetPage(ctx context.Context, id string) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrPageNotFound, "Page not found", nil)
	}
	return cloneDocument(page), nil
}

// --- helpers ---

func cloneDocument(doc models.Document) models.Document {
	copied := make(models.Document, len(doc))
	for k, v := range doc {
		copied[k] = v
	}
	return copied
}

// documentInt coerces the numeric types a document field may hold after a
// JSON or BSON round trip.
func documentInt(doc models.Document, field string) int {
	switch v := doc[field].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func documentTime(doc models.Document, field string) time.Time {
	switch v := doc[field].(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	default:
		return time.Time{}
	}
}

// pageWindow clamps a skip/limit window to the slice bounds.
func pageWindow(n, skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if skip > n {
		skip = n
	}
	end := n
	if limit > 0 && skip+limit < n {
		end = skip + limit
	}
	return skip, end
}
