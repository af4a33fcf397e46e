package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msdsapi/internal/model"
	"msdsapi/internal/repository"
)

var attachmentCols = []string{"id", "title", "type", "file_path", "created_at"}

func TestAttachmentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 19, 10, 0, 0, 0, time.UTC)

	t.Run("explicit id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO attachments \\(id, title, type, file_path\\)").
			WithArgs(42, "독성", 2, "images/warning/toxic.png").
			WillReturnRows(sqlmock.NewRows(attachmentCols).AddRow(42, "독성", 2, "images/warning/toxic.png", now))

		a, err := repo.Create(ctx, &model.Attachment{ID: 42, Title: "독성", Type: model.AttachmentWarningSymbol, FilePath: strPtr("images/warning/toxic.png")})

		require.NoError(t, err)
		assert.Equal(t, int64(42), a.ID)
		assert.Equal(t, model.AttachmentWarningSymbol, a.Type)
		assert.Equal(t, now, a.CreatedAt)
	})

	t.Run("generated id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO attachments \\(title, type, file_path\\)").
			WithArgs("3층 창고", 1, nil).
			WillReturnRows(sqlmock.NewRows(attachmentCols).AddRow(43, "3층 창고", 1, nil, now))

		a, err := repo.Create(ctx, &model.Attachment{Title: "3층 창고", Type: model.AttachmentLocation})

		require.NoError(t, err)
		assert.Equal(t, int64(43), a.ID)
		assert.Nil(t, a.FilePath)
	})

	t.Run("duplicate id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO attachments").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "attachments_pkey"})

		a, err := repo.Create(ctx, &model.Attachment{ID: 42, Title: "x"})

		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.Nil(t, a)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM attachments WHERE id = ?").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(attachmentCols))

	a, err := repo.FindByID(context.Background(), 99)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, a)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()
	now := time.Now()
	warning := model.AttachmentWarningSymbol

	tests := []struct {
		name   string
		filter model.AttachmentFilter
		docArg any
		typArg any
	}{
		{name: "no filter", filter: model.AttachmentFilter{}, docArg: nil, typArg: nil},
		{name: "by document", filter: model.AttachmentFilter{DocumentID: "M0001"}, docArg: "M0001", typArg: nil},
		{name: "by document and type", filter: model.AttachmentFilter{DocumentID: "M0001", Type: &warning}, docArg: "M0001", typArg: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery("SELECT (.+) FROM attachments a WHERE (.+) ORDER BY a.created_at DESC").
				WithArgs(tt.docArg, tt.typArg).
				WillReturnRows(sqlmock.NewRows(attachmentCols).AddRow(4, "독성", 2, nil, now))

			items, err := repo.List(ctx, tt.filter)

			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "독성", items[0].Title)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	loc := model.AttachmentLocation

	mock.ExpectQuery("UPDATE attachments SET").
		WithArgs(5, nil, 1, nil).
		WillReturnRows(sqlmock.NewRows(attachmentCols).AddRow(5, "1층 실험실", 1, nil, time.Now()))

	a, err := repo.Update(context.Background(), 5, model.AttachmentPatch{Type: &loc})

	require.NoError(t, err)
	assert.Equal(t, model.AttachmentLocation, a.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_Link(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	t.Run("linked", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO document_attachments").
			WithArgs("M0001", 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Link(ctx, "M0001", 4))
	})

	t.Run("missing side", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO document_attachments").
			WithArgs("M0001", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Link(ctx, "M0001", 99), repository.ErrNotFound)
	})

	t.Run("already linked", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO document_attachments").
			WithArgs("M0001", 4).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		assert.ErrorIs(t, repo.Link(ctx, "M0001", 4), repository.ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_UnlinkAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM document_attachments WHERE document_id = ?").
		WithArgs("M0001", 4).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, repo.Unlink(ctx, "M0001", 4))

	mock.ExpectExec("DELETE FROM attachments WHERE id = ?").
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, repo.Delete(ctx, 4))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	cols := append(append([]string{}, attachmentCols...), "linked_at")
	mock.ExpectQuery("SELECT (.+) FROM document_attachments r JOIN attachments a (.+) ORDER BY r.created_at DESC").
		WithArgs("M0001").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(4, "독성", 2, "images/warning/toxic.png", created, newer).
			AddRow(1, "보안경", 0, "None", created, older))

	items, err := repo.ListByDocument(context.Background(), "M0001")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(4), items[0].ID)
	assert.Equal(t, newer, items[0].LinkedAt)
	assert.Equal(t, "None", *items[1].FilePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_FindLinked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM attachments a JOIN document_attachments r").
		WithArgs("M0001", 4).
		WillReturnRows(sqlmock.NewRows(attachmentCols).AddRow(4, "독성", 2, "images/warning/toxic.png", time.Now()))

	a, err := repo.FindLinked(ctx, "M0001", 4)
	require.NoError(t, err)
	assert.Equal(t, "images/warning/toxic.png", *a.FilePath)

	mock.ExpectQuery("SELECT (.+) FROM attachments a JOIN document_attachments r").
		WithArgs("M0002", 4).
		WillReturnRows(sqlmock.NewRows(attachmentCols))

	_, err = repo.FindLinked(ctx, "M0002", 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_DistinctLinkedTitles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)

	mock.ExpectQuery("SELECT DISTINCT a.title FROM attachments a JOIN document_attachments r").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("독성").AddRow("부식성"))

	titles, err := repo.DistinctLinkedTitles(context.Background(), model.AttachmentWarningSymbol)

	require.NoError(t, err)
	assert.Equal(t, []string{"독성", "부식성"}, titles)
	assert.NoError(t, mock.ExpectationsWereMet())
}
