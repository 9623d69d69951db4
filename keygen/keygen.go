// Command keygen generates the HMAC signing key used by the gateway's token
// authentication scheme. The key is printed base64-encoded, ready to be
// pasted into the "key" field of the token section in auth_config.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
)

// minKeyLength is the shortest key the token scheme accepts.
const minKeyLength = 32

func main() {
	var size = flag.Int("bytes", minKeyLength, "Size of the key to generate, in bytes")
	var key = flag.String("validate", "", "Base64-encoded key to validate instead of generating one")

	flag.Parse()

	if *key != "" {
		os.Exit(validate(*key))
	}
	os.Exit(generate(*size))
}

func generate(size int) int {
	if size < minKeyLength {
		fmt.Printf("Key must be at least %d bytes long, requested %d\n", minKeyLength, size)
		return 1
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		fmt.Println("Failed to read random bytes:", err)
		return 1
	}

	fmt.Println(base64.StdEncoding.EncodeToString(key))
	return 0
}

func validate(encoded string) int {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		fmt.Println("INVALID: not base64:", err)
		return 1
	}
	if len(key) < minKeyLength {
		fmt.Printf("INVALID: %d bytes, need at least %d\n", len(key), minKeyLength)
		return 1
	}

	fmt.Printf("Valid %d-byte key\n", len(key))
	return 0
}
