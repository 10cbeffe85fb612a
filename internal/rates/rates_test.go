package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRateStore struct {
	rates     map[string]float64
	countries map[string]string
	failWith  error
}

func newMemRateStore() *memRateStore {
	return &memRateStore{rates: map[string]float64{}, countries: map[string]string{}}
}

func (m *memRateStore) UpsertRate(code, country string, rate float64) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.rates[code] = rate
	m.countries[code] = country
	return nil
}

func ratesFeed(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"EUR":0.92,"JPY":151.3}}`))
	}))
}

func countriesFeed(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name":{"common":"Japan"},"currencies":{"JPY":{"name":"Japanese yen"}}},
			{"name":{"common":"France"},"currencies":{"EUR":{"name":"Euro"}}},
			{"name":{"common":"Germany"},"currencies":{"EUR":{"name":"Euro"}}}
		]`))
	}))
}

func TestFetchRates(t *testing.T) {
	srv := ratesFeed(t)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	rates, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.92, rates["EUR"])
	assert.Equal(t, 1.0, rates["USD"])
}

func TestFetchRatesRejectsFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","rates":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchRates(context.Background())
	assert.Error(t, err)
}

func TestFetchCountriesFirstNameWins(t *testing.T) {
	srv := countriesFeed(t)
	defer srv.Close()

	c := NewClient("", srv.URL)
	countries, err := c.FetchCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Japan", countries["JPY"])
	assert.Equal(t, "France", countries["EUR"]) // first entry seen keeps the code
}

func TestRefreshOnceJoinsFeeds(t *testing.T) {
	ratesSrv := ratesFeed(t)
	defer ratesSrv.Close()
	countriesSrv := countriesFeed(t)
	defer countriesSrv.Close()

	store := newMemRateStore()
	r := NewRefresher(NewClient(ratesSrv.URL, countriesSrv.URL), store, 0, nil)

	require.NoError(t, r.RefreshOnce(context.Background()))
	assert.Equal(t, 151.3, store.rates["JPY"])
	assert.Equal(t, "Japan", store.countries["JPY"])
	assert.Equal(t, "France", store.countries["EUR"])
	assert.Equal(t, "", store.countries["USD"]) // no country entry for USD in the feed
}

func TestRefreshOnceSurvivesCountriesFailure(t *testing.T) {
	ratesSrv := ratesFeed(t)
	defer ratesSrv.Close()
	countriesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer countriesSrv.Close()

	store := newMemRateStore()
	r := NewRefresher(NewClient(ratesSrv.URL, countriesSrv.URL), store, 0, nil)

	require.NoError(t, r.RefreshOnce(context.Background()))
	assert.Len(t, store.rates, 3)
	assert.Equal(t, "", store.countries["EUR"])
}

func TestRefreshOncePropagatesRatesFailure(t *testing.T) {
	countriesSrv := countriesFeed(t)
	defer countriesSrv.Close()
	ratesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ratesSrv.Close()

	r := NewRefresher(NewClient(ratesSrv.URL, countriesSrv.URL), newMemRateStore(), 0, nil)
	assert.Error(t, r.RefreshOnce(context.Background()))
}

func TestRefreshOncePropagatesStoreFailure(t *testing.T) {
	ratesSrv := ratesFeed(t)
	defer ratesSrv.Close()

	store := newMemRateStore()
	store.failWith = errors.New("disk full")

	r := NewRefresher(NewClient(ratesSrv.URL, ""), store, 0, nil)
	assert.ErrorContains(t, r.RefreshOnce(context.Background()), "disk full")
}
