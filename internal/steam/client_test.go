package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crateloop/steamshelf/internal/boot"
	"github.com/crateloop/steamshelf/internal/model"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &boot.Config{}
	config.Steam.APIKey = "test-key"
	config.Steam.BaseURL = server.URL
	return New(config)
}

func TestGetPlayerSummaries(t *testing.T) {
	assert := assert.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/ISteamUser/GetPlayerSummaries/v2/", r.URL.Path)
		assert.Equal("test-key", r.URL.Query().Get("key"))
		assert.Equal("76561197960265729,76561197960265730", r.URL.Query().Get("steamids"))
		w.Write([]byte(`{"response":{"players":[
			{"steamid":"76561197960265729","personaname":"alpha","communityvisibilitystate":3,"personastate":1},
			{"steamid":"76561197960265730"}
		]}}`))
	})

	players, err := client.GetPlayerSummaries(context.Background(), []model.SteamID{
		model.SteamIDBase + 1, model.SteamIDBase + 2,
	})
	assert.Nil(err)
	assert.Len(players, 2)

	assert.Equal("alpha", *players[0].PersonaName)
	assert.Equal(3, *players[0].CommunityVisibilityState)
	assert.Equal(1, *players[0].PersonaState)

	// absent keys decode to nil, not zero values
	assert.Nil(players[1].PersonaName)
	assert.Nil(players[1].PersonaState)
	assert.Nil(players[1].LastLogoff)
}

func TestGetPlayerSummariesCeiling(t *testing.T) {
	assert := assert.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	ids := make([]model.SteamID, MaxBatchSize+1)
	_, err := client.GetPlayerSummaries(context.Background(), ids)
	assert.NotNil(err)
}

func TestGetPlayerBans(t *testing.T) {
	assert := assert.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/ISteamUser/GetPlayerBans/v1/", r.URL.Path)
		w.Write([]byte(`{"players":[
			{"SteamId":"76561197960265729","CommunityBanned":true,"VACBanned":true,
			 "NumberOfVACBans":2,"NumberOfGameBans":0,"DaysSinceLastBan":12,"EconomyBan":"none"}
		]}`))
	})

	bans, err := client.GetPlayerBans(context.Background(), []model.SteamID{model.SteamIDBase + 1})
	assert.Nil(err)
	assert.Len(bans, 1)
	assert.True(*bans[0].CommunityBanned)
	assert.Equal(2, *bans[0].NumberOfVACBans)
	assert.Equal(12, *bans[0].DaysSinceLastBan)
}

func TestResolveVanity(t *testing.T) {
	assert := assert.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/ISteamUser/ResolveVanityURL/v1/", r.URL.Path)
		if r.URL.Query().Get("vanityurl") == "gabelogannewell" {
			w.Write([]byte(`{"response":{"success":1,"steamid":"76561197960287930"}}`))
			return
		}
		w.Write([]byte(`{"response":{"success":42,"message":"No match"}}`))
	})

	id, ok, err := client.ResolveVanity(context.Background(), "gabelogannewell")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal(model.SteamID(76561197960287930), id)

	_, ok, err = client.ResolveVanity(context.Background(), "nobody")
	assert.Nil(err)
	assert.False(ok)
}

func TestExists(t *testing.T) {
	assert := assert.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("steamids") == "76561197960265729" {
			w.Write([]byte(`{"response":{"players":[{"steamid":"76561197960265729"}]}}`))
			return
		}
		w.Write([]byte(`{"response":{"players":[]}}`))
	})

	ok, err := client.Exists(context.Background(), model.SteamIDBase+1)
	assert.Nil(err)
	assert.True(ok)

	ok, err = client.Exists(context.Background(), model.SteamIDBase+2)
	assert.Nil(err)
	assert.False(ok)
}

func TestTransportFailure(t *testing.T) {
	assert := assert.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetPlayerSummaries(context.Background(), []model.SteamID{model.SteamIDBase + 1})
	assert.ErrorContains(err, "unexpected status 502")
}
