package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-password-hash-key password hash key
//	-token-sign-key session token signing key
//	-token-issuer token issuer name
//	-token-duration session token duration (e.g., "1h", "30m")
//	-ephemeral-token-key ephemeral token signing key
//	-encryption-secret document encryption secret
//	-integrity-hash-key integrity signature key
//	-legacy-card-passphrase legacy card field passphrase
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-blob-endpoint blob store base endpoint
//	-blob-region blob store region
//	-blob-access-key blob store access key
//	-blob-secret-key blob store secret key
//	-blob-document-bucket encrypted document bucket name
//	-blob-asset-bucket unencrypted asset bucket name
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var passwordHashKey string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var ephemeralTokenKey string
	var encryptionSecret string
	var integrityHashKey string
	var legacyCardPassphrase string
	var requestTimeout time.Duration
	var blobEndpoint, blobRegion, blobAccessKey, blobSecretKey string
	var blobDocumentBucket, blobAssetBucket string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&passwordHashKey, "password-hash-key", "", "Password hash key")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 1h, 30m)")
	flag.StringVar(&ephemeralTokenKey, "ephemeral-token-key", "", "Ephemeral token signing key")
	flag.StringVar(&encryptionSecret, "encryption-secret", "", "Document encryption secret")
	flag.StringVar(&integrityHashKey, "integrity-hash-key", "", "Integrity signature key")
	flag.StringVar(&legacyCardPassphrase, "legacy-card-passphrase", "", "Legacy card field passphrase")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&blobEndpoint, "blob-endpoint", "", "Blob store base endpoint")
	flag.StringVar(&blobRegion, "blob-region", "", "Blob store region")
	flag.StringVar(&blobAccessKey, "blob-access-key", "", "Blob store access key")
	flag.StringVar(&blobSecretKey, "blob-secret-key", "", "Blob store secret key")
	flag.StringVar(&blobDocumentBucket, "blob-document-bucket", "", "Encrypted document bucket name")
	flag.StringVar(&blobAssetBucket, "blob-asset-bucket", "", "Unencrypted asset bucket name")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			PasswordHashKey:      passwordHashKey,
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			TokenDuration:        tokenDuration,
			EphemeralTokenKey:    ephemeralTokenKey,
			EncryptionSecret:     encryptionSecret,
			IntegrityHashKey:     integrityHashKey,
			LegacyCardPassphrase: legacyCardPassphrase,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Blob: Blob{
				Endpoint:       blobEndpoint,
				Region:         blobRegion,
				AccessKey:      blobAccessKey,
				SecretKey:      blobSecretKey,
				DocumentBucket: blobDocumentBucket,
				AssetBucket:    blobAssetBucket,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
