package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// KeyLen — длина ключа для AES-256 (в байтах).
const KeyLen = 32

// Ошибки криптографического слоя.
var (
	// ErrKeyLength — ключ не равен 32 байтам (ошибка конфигурации, фатальна при старте).
	ErrKeyLength = errors.New("encryption key must be exactly 32 bytes")
	// ErrEncryption — операция шифрования не удалась.
	ErrEncryption = errors.New("encryption failed")
	// ErrDecryption — операция расшифровки не удалась.
	ErrDecryption = errors.New("decryption failed")
)

// Cipher шифрует и расшифровывает отдельные значения полей.
// Алгоритм: AES-256-CBC с дополнением PKCS#7; на каждый вызов Encrypt
// генерируется свежий случайный IV. Хранимый формат — base64(IV || шифртекст).
type Cipher struct {
	key []byte
}

// NewCipher создаёт Cipher с проверкой длины ключа: не 32 байта — ErrKeyLength.
// Никакого молчаливого выравнивания здесь нет, см. NewCipherCompat.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("%w: got %d", ErrKeyLength, len(key))
	}
	k := make([]byte, KeyLen)
	copy(k, key)
	return &Cipher{key: k}, nil
}

// NewCipherCompat — режим совместимости со старым поведением: ключ короче 32 байт
// дополняется байтом '0', длиннее — усекается. Ослабляет стойкость ключа,
// включается только явно через конфигурацию; предупреждение пишет вызывающая сторона.
func NewCipherCompat(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: got 0", ErrKeyLength)
	}
	k := make([]byte, KeyLen)
	copy(k, key)
	for i := len(key); i < KeyLen; i++ {
		k[i] = '0'
	}
	return &Cipher{key: k}, nil
}

// Encrypt шифрует строку и возвращает base64(IV || шифртекст).
// Пустой вход — пустой выход: "" означает «данных нет» и шифр не вызывается.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)

	buf := make([]byte, aes.BlockSize+len(padded))
	iv := buf[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decrypt разбирает base64(IV || шифртекст) и возвращает исходную строку.
// Симметрично Encrypt: "" на входе — "" на выходе.
func (c *Cipher) Decrypt(blob string) (string, error) {
	if blob == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryption, err)
	}
	if len(data) < aes.BlockSize {
		return "", fmt.Errorf("%w: blob shorter than IV", ErrDecryption)
	}

	iv := data[:aes.BlockSize]
	ciphertext := data[aes.BlockSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext is not block-aligned", ErrDecryption)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	unpadded, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return string(unpadded), nil
}

// pkcs7Pad дополняет данные до кратности размеру блока.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad снимает дополнение PKCS#7.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
