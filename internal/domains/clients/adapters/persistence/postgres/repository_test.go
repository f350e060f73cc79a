package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchQueryEscapesWildcards(t *testing.T) {
	query, args, err := selectClients().Where("tax_id LIKE ?", "%"+escapeLike(`50%_off\`)+"%").ToSql()
	require.NoError(t, err)
	require.Contains(t, query, `ORDER BY name COLLATE "C", id`)
	require.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}
