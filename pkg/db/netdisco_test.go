package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
)

type fakeRows struct {
	values []string
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                     { r.closed = true }
func (r *fakeRows) Err() error                                 { return r.err }
func (*fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (*fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (*fakeRows) RawValues() [][]byte                          { return nil }
func (*fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                     { return []any{r.values[r.pos-1]}, nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}

	r.pos++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	p, ok := dest[0].(*string)
	if !ok {
		return fmt.Errorf("unexpected scan target %T", dest[0])
	}

	*p = r.values[r.pos-1]

	return nil
}

type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	switch target := dest[0].(type) {
	case **string:
		if v, ok := r.value.(*string); ok {
			*target = v
		}
	case **time.Time:
		if v, ok := r.value.(*time.Time); ok {
			*target = v
		}
	default:
		return fmt.Errorf("unexpected scan target %T", dest[0])
	}

	return nil
}

type fakeQuerier struct {
	rows     *fakeRows
	queryErr error
	row      fakeRow
	lastSQL  string
	lastArgs []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL, q.lastArgs = sql, args
	if q.queryErr != nil {
		return nil, q.queryErr
	}

	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL, q.lastArgs = sql, args

	return q.row
}

func TestDeviceStoreAddresses(t *testing.T) {
	rows := &fakeRows{values: []string{"10.0.0.9", "10.0.0.5"}}
	q := &fakeQuerier{rows: rows}
	store := newDeviceStore(q, nil, time.UTC, logger.NewTestLogger())

	got, err := store.Addresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.9", "10.0.0.5"}, got)
	assert.Equal(t, selectAddresses, q.lastSQL)
	assert.True(t, rows.closed)
}

func TestDeviceStoreAddressesByVendor(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{values: []string{"10.0.25.1"}}}
	store := newDeviceStore(q, nil, time.UTC, logger.NewTestLogger())

	got, err := store.AddressesByVendor(context.Background(), "extreme")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.25.1"}, got)
	assert.Equal(t, selectAddressesByVendor, q.lastSQL)
	assert.Equal(t, []any{"extreme"}, q.lastArgs)
}

func TestDeviceStoreAddressesErrors(t *testing.T) {
	store := newDeviceStore(&fakeQuerier{queryErr: errors.New("conn reset")}, nil, time.UTC, logger.NewTestLogger())
	_, err := store.Addresses(context.Background())
	require.ErrorIs(t, err, ErrFailedToQuery)

	store = newDeviceStore(&fakeQuerier{rows: &fakeRows{err: errors.New("broken")}}, nil, time.UTC, logger.NewTestLogger())
	_, err = store.Addresses(context.Background())
	require.ErrorIs(t, err, ErrFailedToScan)
}

func TestDeviceStoreVendor(t *testing.T) {
	cisco := "cisco"

	store := newDeviceStore(&fakeQuerier{row: fakeRow{value: &cisco}}, nil, time.UTC, logger.NewTestLogger())
	vendor, err := store.Vendor(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, vendor)
	assert.Equal(t, "cisco", *vendor)

	store = newDeviceStore(&fakeQuerier{row: fakeRow{}}, nil, time.UTC, logger.NewTestLogger())
	vendor, err = store.Vendor(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, vendor)

	store = newDeviceStore(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}, nil, time.UTC, logger.NewTestLogger())
	_, err = store.Vendor(context.Background(), "10.0.0.1")
	require.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeviceStoreLastDiscoverUsesConfiguredZone(t *testing.T) {
	zone := time.FixedZone("EST", -5*60*60)
	stored := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	store := newDeviceStore(&fakeQuerier{row: fakeRow{value: &stored}}, nil, zone, logger.NewTestLogger())
	got, err := store.LastDiscover(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, zone, got.Location())
	assert.True(t, got.Equal(time.Date(2026, 10, 19, 13, 30, 0, 0, time.UTC)))
}

func TestDeviceStoreLastDiscoverNullAndErrors(t *testing.T) {
	store := newDeviceStore(&fakeQuerier{row: fakeRow{}}, nil, time.UTC, logger.NewTestLogger())
	got, err := store.LastDiscover(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, got)

	store = newDeviceStore(&fakeQuerier{row: fakeRow{err: errors.New("timeout")}}, nil, time.UTC, logger.NewTestLogger())
	_, err = store.LastDiscover(context.Background(), "10.0.0.1")
	require.ErrorIs(t, err, ErrFailedToQuery)
}

func TestDeviceStoreClose(t *testing.T) {
	closed := false
	store := newDeviceStore(&fakeQuerier{}, func() { closed = true }, nil, logger.NewTestLogger())
	store.Close()
	assert.True(t, closed)
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LoadLocation("Mars/Olympus")
	require.Error(t, err)
}
