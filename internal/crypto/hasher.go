package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры argon2id. Фиксированы в хешере, чтобы все записи хранилища имели
// единый профиль стоимости; сам хеш самоописываем, поэтому смена параметров
// не ломает проверку старых записей.
const (
	argonMemory  = 64 * 1024 // KiB
	argonTime    = 4
	argonThreads = 3
	argonSaltLen = 16
	argonKeyLen  = 32
)

// Hasher — одностороннее хеширование паролей (argon2id, формат PHC).
type Hasher struct{}

// NewHasher создаёт хешер паролей.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash возвращает строку вида
// $argon2id$v=19$m=65536,t=4,p=3$<salt>$<digest> с base64 без дополнения.
// Пустой пароль допустим: хеш считается и для него.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify сверяет пароль с хешем. Параметры берутся из самого хеша.
// Любое несовпадение и любой битый хеш дают false, ошибки не возвращаются.
func (h *Hasher) Verify(password, encoded string) bool {
	version, memory, time, threads, salt, digest, ok := parseEncoded(encoded)
	if !ok || version != argon2.Version {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(digest)))
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}

// parseEncoded разбирает строку PHC-формата argon2id.
func parseEncoded(encoded string) (version int, memory, time uint32, threads uint8, salt, digest []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, 0, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, 0, nil, nil, false
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return 0, 0, 0, 0, nil, nil, false
	}
	return version, memory, time, threads, salt, digest, true
}
