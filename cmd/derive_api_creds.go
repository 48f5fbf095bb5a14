package cmd

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/spf13/cobra"
)

var deriveAPICredsCmd = &cobra.Command{
	Use:   "derive-api-creds",
	Short: "Derive API credentials using L1 authentication (private key)",
	Long: `Uses your private key to derive Polymarket API credentials via L1
authentication. This creates or retrieves the API KEY, SECRET, and PASSPHRASE
needed for trading.

The credentials will be printed - save them to your .env file:
  POLYMARKET_API_KEY=...
  POLYMARKET_SECRET=...
  POLYMARKET_PASSPHRASE=...`,
	RunE: runDeriveAPICreds,
}

func init() {
	rootCmd.AddCommand(deriveAPICredsCmd)
}

func runDeriveAPICreds(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	privateKeyHex := strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x")
	if privateKeyHex == "" {
		return errors.New("POLYGON_WALLET_PRIVATE_KEY not set")
	}

	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return errors.New("error casting public key to ECDSA")
	}
	address := crypto.PubkeyToAddress(*publicKey)

	fmt.Printf("=== Deriving Polymarket API Credentials ===\n\n")
	fmt.Printf("EOA Address: %s\n\n", address.Hex())

	timestamp := time.Now().Unix()
	nonce := 0

	chainID := math.NewHexOrDecimal256(137)
	domain := apitypes.TypedDataDomain{
		Name:    "ClobAuthDomain",
		Version: "1",
		ChainId: chainID,
	}

	message := map[string]interface{}{
		"address":   address.Hex(),
		"timestamp": fmt.Sprintf("%d", timestamp),
		"nonce":     fmt.Sprintf("%d", nonce),
		"message":   "This message attests that I control the given wallet",
	}

	dataTypes := apitypes.Types{
		"EIP712Domain": []apitypes.Type{
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
		},
		"ClobAuth": []apitypes.Type{
			{Name: "address", Type: "address"},
			{Name: "timestamp", Type: "string"},
			{Name: "nonce", Type: "uint256"},
			{Name: "message", Type: "string"},
		},
	}

	typedData := apitypes.TypedData{
		Types:       dataTypes,
		PrimaryType: "ClobAuth",
		Domain:      domain,
		Message:     message,
	}

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return fmt.Errorf("hash domain: %w", err)
	}

	typedDataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return fmt.Errorf("hash message: %w", err)
	}

	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(typedDataHash)))
	hash := crypto.Keccak256Hash(rawData)

	signature, err := crypto.Sign(hash.Bytes(), privateKey)
	if err != nil {
		return fmt.Errorf("sign message: %w", err)
	}

	// Adjust V value for Ethereum (27 or 28)
	if signature[64] < 27 {
		signature[64] += 27
	}

	signatureHex := hexutil.Encode(signature)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := cfg.ClobURL + "/auth/derive-api-key"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("POLY_ADDRESS", address.Hex())
	req.Header.Set("POLY_SIGNATURE", signatureHex)
	req.Header.Set("POLY_TIMESTAMP", fmt.Sprintf("%d", timestamp))
	req.Header.Set("POLY_NONCE", fmt.Sprintf("%d", nonce))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var creds struct {
		APIKey     string `json:"apiKey"`
		Secret     string `json:"secret"`
		Passphrase string `json:"passphrase"`
	}
	if err := json.Unmarshal(body, &creds); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	fmt.Printf("=== API Credentials Derived ===\n\n")
	fmt.Printf("POLYMARKET_API_KEY=%s\n", creds.APIKey)
	fmt.Printf("POLYMARKET_SECRET=%s\n", creds.Secret)
	fmt.Printf("POLYMARKET_PASSPHRASE=%s\n\n", creds.Passphrase)
	fmt.Printf("Save these to your .env file. They are cryptographically\n")
	fmt.Printf("linked to your private key.\n")

	return nil
}
