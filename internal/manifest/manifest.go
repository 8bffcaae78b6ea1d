// Package manifest signs the list of files written for a data set, with
// their checksums, so later hand edits can be detected.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iudanet/statemod/internal/checksum"
)

const defaultIssuer = "statemod"

var (
	// ErrEmptySecret возвращается при пустом ключе подписи
	ErrEmptySecret = errors.New("manifest secret cannot be empty")
	// ErrInvalidManifest возвращается, если токен не прошел проверку
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Entry один файл манифеста
type Entry struct {
	Path      string `json:"path"`
	Component string `json:"component,omitempty"`
	Checksum  string `json:"checksum"`
}

// Claims представляет JWT claims манифеста
type Claims struct {
	Files []Entry `json:"files"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию подписи
type Config struct {
	Secret []byte
	// TTL срок действия манифеста; 0 без срока
	TTL    time.Duration
	Issuer string
}

// NewEntry считает сумму файла и создает запись манифеста
func NewEntry(path, component string) (Entry, error) {
	sum, err := checksum.File(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create manifest entry: %w", err)
	}
	return Entry{Path: path, Component: component, Checksum: sum}, nil
}

// Sign создает подписанный HS256 манифест
func Sign(cfg Config, entries []Entry) (string, error) {
	if len(cfg.Secret) == 0 {
		return "", ErrEmptySecret
	}

	now := time.Now()
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	claims := Claims{
		Files: entries,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	if cfg.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign manifest: %w", err)
	}

	return tokenString, nil
}

// Parse проверяет подпись и срок действия манифеста
func Parse(cfg Config, tokenString string) (*Claims, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidManifest
}

// Verify проверяет манифест и пересчитывает суммы всех файлов.
// Относительные пути считаются от dir. Все несовпадения собираются
// в одну ошибку, каждая оборачивает checksum.ErrMismatch.
func Verify(cfg Config, tokenString, dir string) (*Claims, error) {
	claims, err := Parse(cfg, tokenString)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, e := range claims.Files {
		path := e.Path
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		if err := checksum.Verify(path, e.Checksum); err != nil {
			errs = append(errs, err)
		}
	}

	return claims, errors.Join(errs...)
}
