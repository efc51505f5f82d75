package jikan

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lepinkainen/otaku/internal/catalog"
	otakuerrors "github.com/lepinkainen/otaku/internal/errors"
)

var errMissingData = errors.New(`missing "data" array`)

// Search runs a filtered search against one catalog. page is 1-based and
// limit is capped at catalog.UpstreamMaxLimit.
func (c *Client) Search(ctx context.Context, kind catalog.Kind, filters catalog.Filters, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	limit = clampLimit(limit)

	params := Translate(kind, filters)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, kind, params.Encode())

	response, err := c.list(ctx, endpoint)
	if err != nil {
		return Page{}, fmt.Errorf("search %s page %d: %w", kind, page, err)
	}

	result := Page{
		Kind:        kind,
		Items:       normalizeAll(kind, response.Data),
		Total:       len(response.Data),
		CurrentPage: page,
		LastPage:    1,
	}
	if p := response.Pagination; p != nil {
		if p.Items != nil && p.Items.Total != nil {
			result.Total = *p.Items.Total
		}
		if p.CurrentPage != nil {
			result.CurrentPage = *p.CurrentPage
		}
		if p.LastVisiblePage != nil && *p.LastVisiblePage > 0 {
			result.LastPage = *p.LastVisiblePage
		}
	}

	return result, nil
}

// TopList fetches the top-ranked entries of one catalog.
func (c *Client) TopList(ctx context.Context, kind catalog.Kind, limit int) ([]catalog.Item, error) {
	endpoint := fmt.Sprintf("%s/top/%s?%s", c.baseURL, kind, limitParams(limit))

	response, err := c.list(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("top %s: %w", kind, err)
	}
	return normalizeAll(kind, response.Data), nil
}

// CurrentSeason fetches the anime airing this season.
func (c *Client) CurrentSeason(ctx context.Context, limit int) ([]catalog.Item, error) {
	endpoint := fmt.Sprintf("%s/seasons/now?%s", c.baseURL, limitParams(limit))

	response, err := c.list(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("current season: %w", err)
	}
	return normalizeAll(catalog.Anime, response.Data), nil
}

// Season fetches the anime of a specific season.
func (c *Client) Season(ctx context.Context, year int, season Season, limit int) ([]catalog.Item, error) {
	endpoint := fmt.Sprintf("%s/seasons/%d/%s?%s", c.baseURL, year, season, limitParams(limit))

	response, err := c.list(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("season %s %d: %w", season, year, err)
	}
	return normalizeAll(catalog.Anime, response.Data), nil
}

func (c *Client) list(ctx context.Context, endpoint string) (*listResponse, error) {
	var response listResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	if response.Data == nil {
		return nil, otakuerrors.NewMalformedResponseError(sourceName, errMissingData)
	}
	return &response, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > catalog.UpstreamMaxLimit {
		return catalog.UpstreamMaxLimit
	}
	return limit
}

func limitParams(limit int) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	return params.Encode()
}
