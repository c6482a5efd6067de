package notes_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/notes"
	"github.com/pointtaken/timesheet/pkg/logger"
)

func TestNotesService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notes Service Suite")
}

type mockNoteRepository struct {
	notes map[string]*notes.Note
}

func newMockNoteRepository() *mockNoteRepository {
	return &mockNoteRepository{notes: make(map[string]*notes.Note)}
}

func (m *mockNoteRepository) GetByOrganization(ctx context.Context, organizationID string) ([]notes.Note, error) {
	var out []notes.Note
	for _, n := range m.notes {
		if n.OrganizationID == organizationID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id string) (*notes.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, notes.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (m *mockNoteRepository) Create(ctx context.Context, n *notes.Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *mockNoteRepository) Update(ctx context.Context, n *notes.Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *mockNoteRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return notes.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

var _ = Describe("Notes Service", func() {
	var (
		service *notes.Service
		repo    *mockNoteRepository
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockNoteRepository()
		service = notes.NewService(repo, logger.L())
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("assigns an id and trims the fields", func() {
			note, err := service.Create(ctx, "acme", notes.NoteDTO{
				Title:   "  Statusmøte  ",
				Content: "  Gikk gjennom backlog.  ",
				URL:     " https://example.com/referat ",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(note.ID).NotTo(BeEmpty())
			Expect(note.Title).To(Equal("Statusmøte"))
			Expect(note.Content).To(Equal("Gikk gjennom backlog."))
			Expect(note.URL).To(Equal("https://example.com/referat"))
		})

		It("requires content", func() {
			_, err := service.Create(ctx, "acme", notes.NoteDTO{Title: "Tom"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("allows an empty title", func() {
			note, err := service.Create(ctx, "acme", notes.NoteDTO{Content: "Bare innhold"})
			Expect(err).NotTo(HaveOccurred())
			Expect(note.Title).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("replaces the fields", func() {
			note, err := service.Create(ctx, "acme", notes.NoteDTO{Content: "v1"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ctx, "acme", note.ID, notes.NoteDTO{Content: "v2"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Content).To(Equal("v2"))
		})

		It("refuses notes from another organization", func() {
			note, err := service.Create(ctx, "acme", notes.NoteDTO{Content: "v1"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(ctx, "other", note.ID, notes.NoteDTO{Content: "v2"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoteNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the note", func() {
			note, err := service.Create(ctx, "acme", notes.NoteDTO{Content: "borte snart"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, "acme", note.ID)).To(Succeed())

			remaining, err := service.ListByOrganization(ctx, "acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(BeEmpty())
		})

		It("reports unknown ids", func() {
			err := service.Delete(ctx, "acme", "missing")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoteNotFound))
		})
	})
})
