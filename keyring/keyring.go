// Package keyring stores the NordVPN account credentials. It uses the
// system keyring when available, falling back to an encrypted local
// file when not.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/scrypt"

	"nordvpn-indicator/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "nordvpn-indicator"

	usernameKey = "account-username"
	passwordKey = "account-password"
)

// Storage backend state.
var (
	useLocalStorage bool
	localStoreMu    sync.RWMutex
	localStore      map[string]string
	localStoreFile  string
	encryptionKey   []byte
	initOnce        sync.Once
)

func initStorage() {
	initOnce.Do(func() {
		// Probe the system keyring; headless sessions have none.
		probeKey := "nordvpn-indicator-probe"
		if err := keyring.Set(serviceName, probeKey, "probe"); err == nil {
			keyring.Delete(serviceName, probeKey)
			return
		}
		useLocalStorage = true
		initLocalStorage()
	})
}

func initLocalStorage() {
	configDir, err := common.GetConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config", common.ConfigDirName)
		os.MkdirAll(configDir, 0700)
	}
	localStoreFile = filepath.Join(configDir, common.CredentialsFileName)

	// Derive the file key from machine-specific data so the credential
	// file is useless when copied to another host.
	hostname, _ := os.Hostname()
	keyData := fmt.Sprintf("%s-%s-%s-%d", serviceName, hostname, machineID(), os.Getuid())
	salt := []byte(serviceName + "-credential-salt")
	key, err := scrypt.Key([]byte(keyData), salt, 1<<15, 8, 1, 32)
	if err != nil {
		// Parameters are constant and valid; this cannot happen.
		panic(err)
	}
	encryptionKey = key

	localStore = make(map[string]string)
	loadLocalStore()
}

func machineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

func loadLocalStore() {
	data, err := os.ReadFile(localStoreFile)
	if err != nil {
		return
	}

	decrypted, err := decrypt(data)
	if err != nil {
		common.LogWarn("credential file unreadable, starting empty: %v", err)
		return
	}

	json.Unmarshal(decrypted, &localStore)
}

func saveLocalStore() error {
	localStoreMu.RLock()
	data, err := json.Marshal(localStore)
	localStoreMu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := encrypt(data)
	if err != nil {
		return err
	}

	return os.WriteFile(localStoreFile, encrypted, 0600)
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func set(key, value string) error {
	initStorage()

	if useLocalStorage {
		localStoreMu.Lock()
		localStore[key] = value
		localStoreMu.Unlock()
		return saveLocalStore()
	}

	if err := keyring.Set(serviceName, key, value); err != nil {
		useLocalStorage = true
		initLocalStorage()
		localStoreMu.Lock()
		localStore[key] = value
		localStoreMu.Unlock()
		return saveLocalStore()
	}
	return nil
}

func get(key string) (string, error) {
	initStorage()

	if useLocalStorage {
		localStoreMu.RLock()
		value, exists := localStore[key]
		localStoreMu.RUnlock()
		if !exists {
			return "", common.ErrNoCredential
		}
		return value, nil
	}

	value, err := keyring.Get(serviceName, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", common.ErrNoCredential
		}
		localStoreMu.RLock()
		value, exists := localStore[key]
		localStoreMu.RUnlock()
		if exists {
			return value, nil
		}
		return "", common.ErrNoCredential
	}
	return value, nil
}

func remove(key string) error {
	initStorage()

	if !useLocalStorage {
		keyring.Delete(serviceName, key)
	}

	localStoreMu.Lock()
	delete(localStore, key)
	localStoreMu.Unlock()
	if localStoreFile != "" {
		return saveLocalStore()
	}
	return nil
}

// StoreAccount saves the account credentials.
func StoreAccount(username, password string) error {
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := set(usernameKey, username); err != nil {
		return err
	}
	return set(passwordKey, password)
}

// Account retrieves the stored account credentials. It returns
// common.ErrNoCredential when nothing is stored.
func Account() (username, password string, err error) {
	username, err = get(usernameKey)
	if err != nil {
		return "", "", err
	}
	password, err = get(passwordKey)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

// DeleteAccount removes the stored account credentials.
func DeleteAccount() error {
	if err := remove(usernameKey); err != nil {
		return err
	}
	return remove(passwordKey)
}

// HasAccount reports whether account credentials are stored.
func HasAccount() bool {
	_, _, err := Account()
	return err == nil
}
