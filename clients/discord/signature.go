package discord

import (
	"crypto/ed25519"
	"encoding/hex"
)

// ValidateSignature verifies the detached Ed25519 signature Discord attaches
// to signed interaction requests. The signed payload is the concatenation of
// the timestamp header and the verbatim request body. Fails closed: any
// decoding or length error yields false, never a panic.
func ValidateSignature(publicKeyHex, timestamp string, body []byte, signatureHex string) bool {
	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return false
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return false
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)

	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
