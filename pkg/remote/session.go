package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/sftp"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
)

// Config holds the connection parameters for one session.
type Config struct {
	// Host is the remote hostname or IP address
	Host string

	// Port is the SSH port
	Port string

	// User is the SSH username
	User string

	// PrivateKeyPath is the path to the private key file
	PrivateKeyPath string

	// PrivateKeyPassphrase is the passphrase for encrypted private keys
	PrivateKeyPassphrase string

	// HandshakeTimeout bounds a single SSH handshake attempt
	HandshakeTimeout time.Duration

	// RetryInterval is the delay between failed handshake attempts
	RetryInterval time.Duration

	// ConnectBudget is the total wall-clock time allowed for connecting;
	// once exceeded, the last handshake error is surfaced as-is
	ConnectBudget time.Duration

	// ProbeTimeout bounds a single TCP reachability probe
	ProbeTimeout time.Duration

	// ProbeInterval is the delay between failed reachability probes
	ProbeInterval time.Duration
}

// DefaultConfig returns a Config with the standard timing parameters.
func DefaultConfig(host, port, user, privateKeyPath string) *Config {
	return &Config{
		Host:             host,
		Port:             port,
		User:             user,
		PrivateKeyPath:   privateKeyPath,
		HandshakeTimeout: 10 * time.Second,
		RetryInterval:    20 * time.Second,
		ConnectBudget:    5 * time.Minute,
		ProbeTimeout:     5 * time.Second,
		ProbeInterval:    10 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is required")
	}
	if _, err := os.Stat(c.PrivateKeyPath); err != nil {
		return fmt.Errorf("private key file not found: %s", c.PrivateKeyPath)
	}
	return nil
}

// Address returns the formatted SSH address (host:port).
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) buildClientConfig() (*ssh.ClientConfig, error) {
	keyBytes, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	var signer ssh.Signer
	if c.PrivateKeyPassphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(c.PrivateKeyPassphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(keyBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &ssh.ClientConfig{
		User: c.User,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},
		// The host key changes on every reprovision, so pinning is
		// not possible across runs.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         c.HandshakeTimeout,
	}, nil
}

// Session is an established SSH connection with an SFTP channel on top.
type Session struct {
	addr   string
	client *ssh.Client
	sftp   *sftp.Client
}

// Dial connects to the host described by config. Each handshake attempt is
// preceded by a TCP reachability probe, and failed handshakes are retried
// on a fixed interval until the connect budget is spent.
func Dial(ctx context.Context, config *Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, &SessionError{Op: "connect", Err: err}
	}
	clientConfig, err := config.buildClientConfig()
	if err != nil {
		return nil, &SessionError{Op: "connect", Err: err}
	}

	address := config.Address()
	deadline := time.Now().Add(config.ConnectBudget)

	var client *ssh.Client
	attempt := func() error {
		if err := waitReachable(ctx, address, config); err != nil {
			return backoff.Permanent(err)
		}

		log.Debug().Str("address", address).Msg("attempting SSH handshake")
		c, err := ssh.Dial("tcp", address, clientConfig)
		if err != nil {
			if time.Now().After(deadline) {
				return backoff.Permanent(err)
			}
			log.Debug().Err(err).Str("address", address).Msg("SSH handshake failed, retrying")
			return err
		}
		client = c
		return nil
	}

	bo := backoff.WithContext(backoff.NewConstantBackOff(config.RetryInterval), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		return nil, &SessionError{Op: "connect", Err: err, IsTemporary: true}
	}

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()
		return nil, &SessionError{Op: "sftp-init", Err: err, IsTemporary: true}
	}

	log.Info().Str("address", address).Msg("SSH connection established")
	return &Session{addr: address, client: client, sftp: sftpClient}, nil
}

// waitReachable blocks until a plain TCP connection to address succeeds.
// Cheaper than a failed handshake while the forwarded port is not live yet.
func waitReachable(ctx context.Context, address string, config *Config) error {
	dialer := &net.Dialer{Timeout: config.ProbeTimeout}
	for {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug().Err(err).Str("address", address).Msg("waiting for SSH port")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.ProbeInterval):
		}
	}
}

// PutFile writes data to remotePath, truncating any existing file.
func (s *Session) PutFile(remotePath string, data io.Reader) error {
	log.Debug().Str("remote", remotePath).Msg("putting file")

	remoteFile, err := s.sftp.Create(remotePath)
	if err != nil {
		return &SessionError{Op: "put-file", Err: err}
	}
	defer remoteFile.Close()

	if _, err := io.Copy(remoteFile, data); err != nil {
		return &SessionError{Op: "put-file", Err: err}
	}
	if err := remoteFile.Sync(); err != nil {
		return &SessionError{Op: "put-file", Err: err}
	}
	return nil
}

// FileExists reports whether remotePath exists as a regular file. A path
// that exists but is not a regular file is an error, not false.
func (s *Session) FileExists(remotePath string) (bool, error) {
	info, err := s.sftp.Stat(remotePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &SessionError{Op: "stat", Err: err, IsTemporary: true}
	}
	if !info.Mode().IsRegular() {
		return false, &NotRegularFileError{Path: remotePath}
	}
	return true, nil
}

// RemoveFile deletes remotePath.
func (s *Session) RemoveFile(remotePath string) error {
	if err := s.sftp.Remove(remotePath); err != nil {
		return &SessionError{Op: "remove", Err: err}
	}
	return nil
}

// Restart asks the host to reboot. The connection usually drops before the
// command's exit status arrives, so transport errors are not reported.
func (s *Session) Restart() error {
	sess, err := s.client.NewSession()
	if err != nil {
		return &SessionError{Op: "restart", Err: err, IsTemporary: true}
	}
	defer sess.Close()

	log.Info().Str("address", s.addr).Msg("restarting host")
	_ = sess.Run("sudo systemctl reboot")
	return nil
}

// Close releases the SFTP channel and the underlying connection.
func (s *Session) Close() error {
	log.Debug().Str("address", s.addr).Msg("closing SSH connection")
	sftpErr := s.sftp.Close()
	connErr := s.client.Close()
	if sftpErr != nil {
		return &SessionError{Op: "disconnect", Err: sftpErr}
	}
	if connErr != nil {
		return &SessionError{Op: "disconnect", Err: connErr}
	}
	return nil
}
