// Package keystore implements the auth.KeyLookup interface. This implements
// an in-memory keystore for JWT support.
package keystore

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

type key struct {
	privatePEM string
	publicPEM  string
}

// KeyStore represents an in-memory store implementation of the KeyLookup
// interface for use with the auth package.
type KeyStore struct {
	store map[string]key
	mu    sync.RWMutex
}

// New constructs an empty KeyStore ready for use.
func New() *KeyStore {
	return &KeyStore{
		store: make(map[string]key),
	}
}

// LoadByFileSystem loads a set of RSA PEM files rooted inside of a directory.
// The name of each PEM file will be used as the key id. The number of keys
// loaded is returned.
func (ks *KeyStore) LoadByFileSystem(fsys fs.FS) (int, error) {
	fn := func(fileName string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if dirEntry.IsDir() {
			return nil
		}

		if path.Ext(fileName) != ".pem" {
			return nil
		}

		file, err := fsys.Open(fileName)
		if err != nil {
			return fmt.Errorf("opening key file: %w", err)
		}
		defer file.Close()

		pemData, err := io.ReadAll(io.LimitReader(file, 1024*1024))
		if err != nil {
			return fmt.Errorf("reading auth private key: %w", err)
		}

		privatePEM := string(pemData)
		publicPEM, err := toPublicPEM(privatePEM)
		if err != nil {
			return fmt.Errorf("converting private key to public: %w", err)
		}

		kid := strings.TrimSuffix(dirEntry.Name(), ".pem")

		ks.mu.Lock()
		defer ks.mu.Unlock()

		ks.store[kid] = key{
			privatePEM: privatePEM,
			publicPEM:  publicPEM,
		}

		return nil
	}

	if err := fs.WalkDir(fsys, ".", fn); err != nil {
		return 0, fmt.Errorf("walking directory: %w", err)
	}

	return len(ks.store), nil
}

// PrivateKey searches the key store for a given kid and returns the
// private key in PEM format.
func (ks *KeyStore) PrivateKey(kid string) (string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	k, found := ks.store[kid]
	if !found {
		return "", errors.New("kid lookup failed")
	}

	return k.privatePEM, nil
}

// PublicKey searches the key store for a given kid and returns the public
// key in PEM format.
func (ks *KeyStore) PublicKey(kid string) (string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	k, found := ks.store[kid]
	if !found {
		return "", errors.New("kid lookup failed")
	}

	return k.publicPEM, nil
}

func toPublicPEM(privatePEM string) (string, error) {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return "", errors.New("invalid pem block")
	}

	var privateKey *rsa.PrivateKey

	switch block.Type {
	case "RSA PRIVATE KEY":
		pk, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return "", fmt.Errorf("parsing pkcs1 private key: %w", err)
		}
		privateKey = pk

	case "PRIVATE KEY":
		pk, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return "", fmt.Errorf("parsing pkcs8 private key: %w", err)
		}
		rsaKey, ok := pk.(*rsa.PrivateKey)
		if !ok {
			return "", errors.New("private key is not rsa")
		}
		privateKey = rsaKey

	default:
		return "", fmt.Errorf("unsupported pem block type %q", block.Type)
	}

	asn1Bytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return "", fmt.Errorf("marshaling public key: %w", err)
	}

	publicBlock := pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: asn1Bytes,
	}

	var sb strings.Builder
	if err := pem.Encode(&sb, &publicBlock); err != nil {
		return "", fmt.Errorf("encoding public pem: %w", err)
	}

	return sb.String(), nil
}
