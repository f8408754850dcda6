package client

import (
	"log"
	"sync"

	"gastos/shared"
)

// UnknownAuthorName is shown when an author's profile can't be resolved.
const UnknownAuthorName = "Usuário Desconhecido"

// AuthorCache resolves author ids to display info, fetching each unseen id at
// most once per cache lifetime. A lookup that finds no user caches the
// unknown-author fallback so deleted accounts aren't re-fetched on every
// snapshot. A lookup that fails (network, server) returns the fallback for
// the current batch but is NOT cached, so it retries on the next snapshot.
type AuthorCache struct {
	client *Client

	mu      sync.Mutex
	entries map[string]shared.AuthorInfo
}

func NewAuthorCache(client *Client) *AuthorCache {
	return &AuthorCache{
		client:  client,
		entries: map[string]shared.AuthorInfo{},
	}
}

// Resolve returns display info for each id. Unseen ids are fetched
// concurrently; results merge into the cache after all lookups settle.
func (c *AuthorCache) Resolve(ids []string) map[string]shared.AuthorInfo {
	resolved := map[string]shared.AuthorInfo{}
	var unseen []string

	c.mu.Lock()
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := resolved[id]; ok {
			continue
		}
		if info, ok := c.entries[id]; ok {
			resolved[id] = info
		} else {
			unseen = append(unseen, id)
			resolved[id] = shared.AuthorInfo{Name: UnknownAuthorName}
		}
	}
	c.mu.Unlock()

	if len(unseen) == 0 {
		return resolved
	}

	type lookupResult struct {
		id    string
		info  shared.AuthorInfo
		cache bool
	}

	results := make([]lookupResult, len(unseen))
	var wg sync.WaitGroup

	for i, id := range unseen {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()

			user, apiError := c.client.GetUser(id)

			if apiError != nil {
				log.Printf("error resolving author %s: %v\n", id, apiError.Msg)
				results[i] = lookupResult{id: id, info: shared.AuthorInfo{Name: UnknownAuthorName}}
				return
			}

			if user == nil {
				results[i] = lookupResult{id: id, info: shared.AuthorInfo{Name: UnknownAuthorName}, cache: true}
				return
			}

			results[i] = lookupResult{
				id:    id,
				info:  shared.AuthorInfo{Name: user.Name, ProfileImageUrl: user.ProfileImageUrl},
				cache: true,
			}
		}(i, id)
	}

	wg.Wait()

	c.mu.Lock()
	for _, res := range results {
		resolved[res.id] = res.info
		if res.cache {
			c.entries[res.id] = res.info
		}
	}
	c.mu.Unlock()

	return resolved
}

// Cached reports whether id has a cached entry. Used in tests.
func (c *AuthorCache) Cached(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}
