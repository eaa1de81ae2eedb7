package category_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/category"
	"github.com/ardiputra/expense-portal/internal/health"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(context.Context) error { return p.err }

type mockRepo struct {
	categories []*category.Category
	err        error
}

func (m *mockRepo) GetCategories() ([]*category.Category, error) {
	return m.categories, m.err
}

type stubSample struct{}

func (s *stubSample) Categories() []*category.Category {
	return []*category.Category{
		{CategoryID: 1, CategoryName: "Travel", IsActive: true},
		{CategoryID: 2, CategoryName: "Meals", IsActive: true},
	}
}

var _ = Describe("Service", func() {
	var (
		repo    *mockRepo
		pinger  *fakePinger
		state   *health.State
		service *category.Service
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	BeforeEach(func() {
		repo = &mockRepo{categories: []*category.Category{
			{CategoryID: 1, CategoryName: "Travel", IsActive: true},
			{CategoryID: 5, CategoryName: "Other", IsActive: false},
		}}
		pinger = &fakePinger{}
		state = health.NewState(pinger, testLogger)
		state.Reprobe(context.Background())
		service = category.NewService(repo, &stubSample{}, state, testLogger)
	})

	It("serves every category with its active flag in live mode", func() {
		categories, fallback, err := service.ListCategories()
		Expect(err).NotTo(HaveOccurred())
		Expect(fallback).To(BeFalse())
		Expect(categories).To(HaveLen(2))
		Expect(categories[1].IsActive).To(BeFalse())
	})

	It("serves the sample set in fallback mode", func() {
		pinger.err = errors.New("connection refused")
		state.Reprobe(context.Background())

		categories, fallback, err := service.ListCategories()
		Expect(err).NotTo(HaveOccurred())
		Expect(fallback).To(BeTrue())
		Expect(categories).To(HaveLen(2))
		Expect(categories[0].CategoryName).To(Equal("Travel"))
	})

	It("wraps store failures in an app error", func() {
		repo.err = errors.New("boom")

		_, _, err := service.ListCategories()
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
