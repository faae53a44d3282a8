// Package backend - единственный клиент удалённого REST API.
// Все модули ходят в API только через него: заголовок авторизации,
// Content-Type и разбор ошибок собраны в одном месте.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout    = 20 * time.Second
	defaultAuthScheme = "Token"
	maxErrorBody      = 64 << 10
)

// Эндпоинты API.
const (
	PathDemandes           = "/demandes/"
	PathInterventions      = "/interventions/"
	PathComposants         = "/composants/"
	PathEquipements        = "/equipements/"
	PathUsers              = "/admin/users/"
	PathLogin              = "/login/"
	PathSendHTMLEmail      = "/send-html-email/"
	PathEquipementsPDFMail = "/equipements-pdf-email/"
	PathEquipementsPDF     = "/equipements-export-pdf/"
	PathDashboard          = "/dashboard/"
)

// ItemPath - "/demandes/" + 12 → "/demandes/12/".
func ItemPath(collection string, id int) string {
	return strings.TrimSuffix(collection, "/") + "/" + strconv.Itoa(id) + "/"
}

type Client struct {
	baseURL    string
	scheme     string
	httpClient HTTPDoer
	timeout    time.Duration
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		scheme:     defaultAuthScheme,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     logger.Named("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get декодирует JSON-ответ в target.
func (c *Client) Get(ctx context.Context, token, path string, target any) error {
	return c.Do(ctx, token, http.MethodGet, path, nil, target)
}

func (c *Client) Post(ctx context.Context, token, path string, body, target any) error {
	return c.Do(ctx, token, http.MethodPost, path, body, target)
}

func (c *Client) Patch(ctx context.Context, token, path string, body, target any) error {
	return c.Do(ctx, token, http.MethodPatch, path, body, target)
}

func (c *Client) Delete(ctx context.Context, token, path string) error {
	return c.Do(ctx, token, http.MethodDelete, path, nil, nil)
}

// Do выполняет запрос. Пустой token допустим только для публичных эндпоинтов.
func (c *Client) Do(ctx context.Context, token, method, path string, body, target any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.send(ctx, token, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(method, path, resp)
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("backend: décodage de la réponse %s %s: %w", method, path, err)
	}
	return nil
}

// Stream возвращает тело ответа как есть (PDF и т.п.).
// Вызывающий обязан закрыть Body. Таймаут не накладывается: поток читается
// после возврата из метода, ограничение задаёт контекст запроса.
func (c *Client) Stream(ctx context.Context, token, method, path string, body any) (*http.Response, error) {
	resp, err := c.send(ctx, token, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, c.apiError(method, path, resp)
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, token, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: sérialisation du corps %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend: création de la requête %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", c.scheme+" "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Échec réseau vers l'API",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("backend: exécution de la requête %s %s: %w", method, path, err)
	}

	c.logger.Debug("Réponse de l'API",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)
	return resp, nil
}

func (c *Client) apiError(method, path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return parseAPIError(method, path, resp.StatusCode, data)
}
