package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"strings"
)

// Key wraps an ECDSA P-256 private key used to authorize ledger mutations.
// The identity address is derived from the public key, never chosen.
type Key struct {
	privateKey *ecdsa.PrivateKey
}

var ErrKeyDestroyed = errors.New("key material has been destroyed")

// GenerateKey creates a fresh signing key.
func GenerateKey() (*Key, error) {
	pkey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Key{privateKey: pkey}, nil
}

// NewKey parses a DER-encoded EC private key.
func NewKey(pkeyDer []byte) (*Key, error) {
	pkey, err := x509.ParseECPrivateKey(pkeyDer)
	if err != nil {
		return nil, err
	}
	return &Key{privateKey: pkey}, nil
}

// ParseKey accepts the two encodings callers paste into the prompt:
// a PEM "EC PRIVATE KEY" block, or bare hex-encoded DER.
func ParseKey(material string) (*Key, error) {
	material = strings.TrimSpace(material)
	if block, _ := pem.Decode([]byte(material)); block != nil {
		return NewKey(block.Bytes)
	}
	der, err := hex.DecodeString(strings.TrimPrefix(material, "0x"))
	if err != nil {
		return nil, errors.New("key material is neither PEM nor hex DER")
	}
	return NewKey(der)
}

func sha256Digest(value []byte) []byte {
	hash := sha256.New()
	hash.Write(value)
	return hash.Sum(nil)
}

// PrivatePem serializes the key for storage outside the ledger's custody.
func (k *Key) PrivatePem() ([]byte, error) {
	if k.privateKey == nil {
		return nil, ErrKeyDestroyed
	}
	der, err := x509.MarshalECPrivateKey(k.privateKey)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(
		&pem.Block{
			Type:  "EC PRIVATE KEY",
			Bytes: der,
		},
	), nil
}

// PublicDER returns the PKIX encoding of the public key. It rides along
// in every envelope so the backend can check the signature and derive
// the sender address independently.
func (k *Key) PublicDER() ([]byte, error) {
	if k.privateKey == nil {
		return nil, ErrKeyDestroyed
	}
	return x509.MarshalPKIXPublicKey(&k.privateKey.PublicKey)
}

// Address derives the identity address: "0x" plus the hex encoding of
// the last 20 bytes of SHA-256 over the PKIX public key.
func (k *Key) Address() (string, error) {
	der, err := k.PublicDER()
	if err != nil {
		return "", err
	}
	return AddressOfPublic(der), nil
}

// AddressOfPublic derives an address from a PKIX-encoded public key.
func AddressOfPublic(pubDer []byte) string {
	digest := sha256Digest(pubDer)
	return "0x" + hex.EncodeToString(digest[len(digest)-20:])
}

// Sign produces an ASN.1 ECDSA signature over SHA-256 of value.
func (k *Key) Sign(value []byte) ([]byte, error) {
	if k.privateKey == nil {
		return nil, ErrKeyDestroyed
	}
	return ecdsa.SignASN1(rand.Reader, k.privateKey, sha256Digest(value))
}

// Verify checks an ASN.1 ECDSA signature against a PKIX public key.
func Verify(pubDer, value, signature []byte) error {
	pub, err := x509.ParsePKIXPublicKey(pubDer)
	if err != nil {
		return err
	}
	ecdsaPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return errors.New("public key is not ECDSA")
	}
	if !ecdsa.VerifyASN1(ecdsaPub, sha256Digest(value), signature) {
		return errors.New("signature verification failed")
	}
	return nil
}

// Destroy erases the private scalar. The key is unusable afterwards;
// every signing path must call this on exit.
func (k *Key) Destroy() {
	if k.privateKey == nil {
		return
	}
	k.privateKey.D.SetInt64(0)
	k.privateKey = nil
}
