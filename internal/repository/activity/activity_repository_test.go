package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository"
)

func TestActivityRepository(t *testing.T) {
	drivers := map[string]func(t *testing.T) ActivityRepository{
		"memory": func(t *testing.T) ActivityRepository { return NewMemoryActivityRepository() },
		"gorm": func(t *testing.T) ActivityRepository {
			db, err := repository.OpenDatabase(":memory:")
			require.NoError(t, err)
			return NewGormActivityRepository(db)
		},
	}

	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			for _, kind := range []string{"first", "second", "third"} {
				require.NoError(t, repo.Append(ctx, &domain.ActivityRecord{
					UserID:     "u1",
					Activity:   kind,
					Timestamp:  at.Format(time.RFC3339),
					RecordedAt: at,
				}))
			}
			require.NoError(t, repo.Append(ctx, &domain.ActivityRecord{UserID: "u2", Activity: "other", RecordedAt: at}))

			records, err := repo.FindByUserID(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, records, 3)
			require.Equal(t, []string{"first", "second", "third"},
				[]string{records[0].Activity, records[1].Activity, records[2].Activity})

			empty, err := repo.FindByUserID(ctx, "nobody")
			require.NoError(t, err)
			require.Empty(t, empty)

			total, err := repo.CountAll(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 4, total)
		})
	}
}
