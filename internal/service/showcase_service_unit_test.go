//go:build unit

package service

import (
	"context"
	"database/sql"
	"testing"

	"edusite/internal/data"
	"edusite/internal/logger"
)

// mockShowcaseRepository is a mock implementation of the ShowcaseRepository interface.
type mockShowcaseRepository struct {
	faqsToReturn            []*data.FAQ
	faqToReturn             *data.FAQ
	faqTranslations         []*data.FAQTranslation
	videosToReturn          []*data.Video
	videoToReturn           *data.Video
	testimonialsToReturn    []*data.Testimonial
	testimonialToReturn     *data.Testimonial

	listFAQsCalled          int
	upsertFAQTrCalled       int
	deleteFAQTrCalled       int
	lastFAQTranslation      *data.FAQTranslation
	createVideoCalled       int
	createTestimonialCalled int
}

var _ ShowcaseRepository = (*mockShowcaseRepository)(nil)

func (m *mockShowcaseRepository) ListTestimonials(ctx context.Context, f data.ShowcaseFilter) ([]*data.Testimonial, int, error) {
	return m.testimonialsToReturn, len(m.testimonialsToReturn), nil
}

func (m *mockShowcaseRepository) GetTestimonial(ctx context.Context, id int64) (*data.Testimonial, error) {
	if m.testimonialToReturn != nil && m.testimonialToReturn.ID == id {
		return m.testimonialToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockShowcaseRepository) CreateTestimonial(ctx context.Context, t *data.Testimonial) error {
	m.createTestimonialCalled++
	t.ID = 1
	m.testimonialToReturn = t
	return nil
}

func (m *mockShowcaseRepository) UpdateTestimonial(ctx context.Context, t *data.Testimonial) error {
	return nil
}

func (m *mockShowcaseRepository) DeleteTestimonial(ctx context.Context, id int64) error { return nil }

func (m *mockShowcaseRepository) TestimonialTranslations(ctx context.Context, id int64) ([]*data.TestimonialTranslation, error) {
	return nil, nil
}

func (m *mockShowcaseRepository) UpsertTestimonialTranslation(ctx context.Context, t *data.TestimonialTranslation) error {
	return nil
}

func (m *mockShowcaseRepository) DeleteTestimonialTranslation(ctx context.Context, id int64, language string) error {
	return nil
}

func (m *mockShowcaseRepository) ListFAQs(ctx context.Context, f data.ShowcaseFilter) ([]*data.FAQ, int, error) {
	m.listFAQsCalled++
	return m.faqsToReturn, len(m.faqsToReturn), nil
}

func (m *mockShowcaseRepository) GetFAQ(ctx context.Context, id int64) (*data.FAQ, error) {
	if m.faqToReturn != nil && m.faqToReturn.ID == id {
		return m.faqToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockShowcaseRepository) CreateFAQ(ctx context.Context, f *data.FAQ) error {
	f.ID = 1
	m.faqToReturn = f
	return nil
}

func (m *mockShowcaseRepository) UpdateFAQ(ctx context.Context, f *data.FAQ) error { return nil }

func (m *mockShowcaseRepository) DeleteFAQ(ctx context.Context, id int64) error { return nil }

func (m *mockShowcaseRepository) FAQTranslations(ctx context.Context, id int64) ([]*data.FAQTranslation, error) {
	return m.faqTranslations, nil
}

func (m *mockShowcaseRepository) UpsertFAQTranslation(ctx context.Context, t *data.FAQTranslation) error {
	m.upsertFAQTrCalled++
	m.lastFAQTranslation = t
	return nil
}

func (m *mockShowcaseRepository) DeleteFAQTranslation(ctx context.Context, id int64, language string) error {
	m.deleteFAQTrCalled++
	return nil
}

func (m *mockShowcaseRepository) ListVideos(ctx context.Context, f data.ShowcaseFilter) ([]*data.Video, int, error) {
	return m.videosToReturn, len(m.videosToReturn), nil
}

func (m *mockShowcaseRepository) GetVideo(ctx context.Context, id int64) (*data.Video, error) {
	if m.videoToReturn != nil && m.videoToReturn.ID == id {
		return m.videoToReturn, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockShowcaseRepository) CreateVideo(ctx context.Context, v *data.Video) error {
	m.createVideoCalled++
	v.ID = 1
	m.videoToReturn = v
	return nil
}

func (m *mockShowcaseRepository) UpdateVideo(ctx context.Context, v *data.Video) error { return nil }

func (m *mockShowcaseRepository) DeleteVideo(ctx context.Context, id int64) error { return nil }

func (m *mockShowcaseRepository) VideoTranslations(ctx context.Context, id int64) ([]*data.VideoTranslation, error) {
	return nil, nil
}

func (m *mockShowcaseRepository) UpsertVideoTranslation(ctx context.Context, t *data.VideoTranslation) error {
	return nil
}

func (m *mockShowcaseRepository) DeleteVideoTranslation(ctx context.Context, id int64, language string) error {
	return nil
}

func TestShowcaseService_ListFAQs_ResolvesLanguage(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockShowcaseRepository{
		faqsToReturn: []*data.FAQ{{
			ID:       1,
			Status:   data.StatusPublished,
			Question: "如何报名？",
			Answer:   sql.NullString{String: "在线填写表格。", Valid: true},
			Language: "zh",
		}},
		faqTranslations: []*data.FAQTranslation{{
			ID: 5, FAQID: 1, Language: "en",
			Question: sql.NullString{String: "How do I apply?", Valid: true},
		}},
	}
	svc := NewShowcaseService(repo, testCache, logger.Discard(), "zh")

	list, err := svc.ListFAQs(context.Background(), ListShowcaseParams{Language: "en"})
	if err != nil {
		t.Fatalf("ListFAQs failed: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("expected 1 FAQ, got %d", len(list.Items))
	}
	got := list.Items[0]
	if got.Question != "How do I apply?" {
		t.Errorf("expected translated question, got %q", got.Question)
	}
	if got.Answer != "在线填写表格。" {
		t.Errorf("expected canonical answer fallback, got %q", got.Answer)
	}
}

func TestShowcaseService_ListFAQs_CachedPerLanguage(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockShowcaseRepository{}
	svc := NewShowcaseService(repo, testCache, logger.Discard(), "zh")
	ctx := context.Background()

	if _, err := svc.ListFAQs(ctx, ListShowcaseParams{Language: "zh"}); err != nil {
		t.Fatalf("ListFAQs failed: %v", err)
	}
	if _, err := svc.ListFAQs(ctx, ListShowcaseParams{Language: "zh"}); err != nil {
		t.Fatalf("ListFAQs failed: %v", err)
	}
	if repo.listFAQsCalled != 1 {
		t.Errorf("expected one repository hit for the same language, got %d", repo.listFAQsCalled)
	}
	// A different language is a different cache entry.
	if _, err := svc.ListFAQs(ctx, ListShowcaseParams{Language: "en"}); err != nil {
		t.Fatalf("ListFAQs failed: %v", err)
	}
	if repo.listFAQsCalled != 2 {
		t.Errorf("expected a fresh read for a new language, got %d hits", repo.listFAQsCalled)
	}
}

func TestShowcaseService_CreateFAQ_SyncsTranslation(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockShowcaseRepository{}
	svc := NewShowcaseService(repo, testCache, logger.Discard(), "zh")
	ctx := context.Background()

	_, err := svc.CreateFAQ(ctx, FAQInput{Question: "如何报名？", QuestionEn: "How do I apply?"})
	if err != nil {
		t.Fatalf("CreateFAQ failed: %v", err)
	}
	if repo.upsertFAQTrCalled != 1 {
		t.Fatalf("expected one translation upsert, got %d", repo.upsertFAQTrCalled)
	}
	if repo.lastFAQTranslation.Language != "en" {
		t.Errorf("expected en translation, got %q", repo.lastFAQTranslation.Language)
	}

	// An update without English fields clears the row.
	if _, err := svc.UpdateFAQ(ctx, 1, FAQInput{Question: "如何报名？"}); err != nil {
		t.Fatalf("UpdateFAQ failed: %v", err)
	}
	if repo.deleteFAQTrCalled != 1 {
		t.Errorf("expected the translation to be cleared, got %d deletes", repo.deleteFAQTrCalled)
	}
}

func TestShowcaseService_CreateVideo_RequiresURL(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockShowcaseRepository{}
	svc := NewShowcaseService(repo, testCache, logger.Discard(), "zh")

	if _, err := svc.CreateVideo(context.Background(), VideoInput{Title: "宣传片"}); err == nil {
		t.Error("expected missing video URL to be rejected")
	}
	if repo.createVideoCalled != 0 {
		t.Errorf("no create should reach the repository, got %d", repo.createVideoCalled)
	}
}

func TestShowcaseService_CreateTestimonial_RatingBounds(t *testing.T) {
	testCache, teardown := newTestCache(t)
	defer teardown()

	repo := &mockShowcaseRepository{}
	svc := NewShowcaseService(repo, testCache, logger.Discard(), "zh")
	ctx := context.Background()

	if _, err := svc.CreateTestimonial(ctx, TestimonialInput{StudentName: "李华", Rating: 6}); err == nil {
		t.Error("expected out-of-range rating to be rejected")
	}
	if _, err := svc.CreateTestimonial(ctx, TestimonialInput{StudentName: "李华", Rating: 5}); err != nil {
		t.Errorf("expected rating 5 to be accepted: %v", err)
	}
}
