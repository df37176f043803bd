// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package ssh

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	contracts "github.com/boxworks/boxctl/internal/contracts/ssh"
	"github.com/boxworks/boxctl/internal/host"
	"github.com/pkg/sftp"
)

type copier interface {
	CopyFile(source, target string) error
	CopyDir(source, target string) error
}

type toGuestCopier struct {
	client *sftp.Client
}

type fromGuestCopier struct {
	client *sftp.Client
}

type pathInfo struct {
	path  string
	isDir bool
}

type targetInfo struct {
	pathInfo
	isExisting bool
}

// Copy transfers a file or directory between host and guest over SFTP.
func Copy(copyOptions contracts.CopyOptions, connectionOptions contracts.ConnectionOptions) error {
	copyFunc, err := determineCopyFunc(copyOptions)
	if err != nil {
		return fmt.Errorf("failed to determine copy function: %w", err)
	}

	sshClient, err := Connect(connectionOptions)
	if err != nil {
		return fmt.Errorf("failed to dial SSH: %w", err)
	}
	defer func() {
		slog.Debug("Closing SSH client")
		if err := sshClient.Close(); err != nil {
			slog.Error("failed to close SSH client", "error", err)
		}
	}()

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("failed to create SFTP client: %w", err)
	}
	slog.Debug("SFTP client created on top of SSH connection")
	defer func() {
		slog.Debug("Closing SFTP client")
		if err := sftpClient.Close(); err != nil {
			slog.Error("failed to close SFTP client", "error", err)
		}
	}()

	return copyFunc(sftpClient)
}

func determineCopyFunc(copyOptions contracts.CopyOptions) (func(*sftp.Client) error, error) {
	slog.Debug("Determining copy function", "copy-direction", copyOptions.Direction)

	switch copyOptions.Direction {
	case contracts.CopyToGuest:
		source, err := analyzeLocalSource(copyOptions.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze local source '%s': %w", copyOptions.Source, err)
		}

		return func(sftpClient *sftp.Client) error {
			target, err := analyzeRemoteTarget(copyOptions.Target, sftpClient)
			if err != nil {
				return fmt.Errorf("failed to analyze remote target '%s': %w", copyOptions.Target, err)
			}
			return copySourceToTarget(*source, *target, &toGuestCopier{client: sftpClient})
		}, nil
	case contracts.CopyFromGuest:
		target, err := analyzeLocalTarget(copyOptions.Target)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze local target '%s': %w", copyOptions.Target, err)
		}

		return func(sftpClient *sftp.Client) error {
			source, err := analyzeRemoteSource(copyOptions.Source, sftpClient)
			if err != nil {
				return fmt.Errorf("failed to analyze remote source '%s': %w", copyOptions.Source, err)
			}
			return copySourceToTarget(*source, *target, &fromGuestCopier{client: sftpClient})
		}, nil
	default:
		return nil, fmt.Errorf("invalid copy direction: %v", copyOptions.Direction)
	}
}

func (c *toGuestCopier) CopyFile(localPath, remotePath string) error {
	slog.Debug("Copying file to guest", "local", localPath, "remote", remotePath)

	remoteFile, err := c.client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create/open remote file '%s': %w", remotePath, err)
	}
	defer func() {
		if err := remoteFile.Close(); err != nil {
			slog.Error("failed to close remote file", "error", err, "path", remotePath)
		}
	}()

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file '%s': %w", localPath, err)
	}
	defer func() {
		if err := localFile.Close(); err != nil {
			slog.Error("failed to close local file", "error", err, "path", localPath)
		}
	}()

	bytesCopied, err := io.Copy(remoteFile, localFile)
	if err != nil {
		return fmt.Errorf("failed to copy '%s' to '%s': %w", localPath, remotePath, err)
	}
	slog.Debug("Copied file to guest", "local", localPath, "remote", remotePath, "bytes", bytesCopied)

	return nil
}

func (c *toGuestCopier) CopyDir(localDir, remoteDir string) error {
	slog.Debug("Copying dir to guest", "local", localDir, "remote", remoteDir)

	err := filepath.WalkDir(localDir, func(localPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk local dir '%s': %w", localDir, err)
		}

		localPath = filepath.ToSlash(localPath)

		relativePath, err := filepath.Rel(localDir, localPath)
		if err != nil {
			return fmt.Errorf("failed to determine relative path of '%s': %w", localPath, err)
		}

		remotePath := path.Join(remoteDir, filepath.ToSlash(relativePath))

		if d.IsDir() {
			slog.Debug("Creating remote dir", "path", remotePath)

			if err := c.client.MkdirAll(remotePath); err != nil {
				return fmt.Errorf("failed to create remote dir '%s': %w", remotePath, err)
			}
			return nil
		}
		return c.CopyFile(localPath, remotePath)
	})
	if err != nil {
		return fmt.Errorf("failed to copy dir '%s' to '%s': %w", localDir, remoteDir, err)
	}

	slog.Debug("Dir copied to guest", "local", localDir, "remote", remoteDir)

	return nil
}

func (c *fromGuestCopier) CopyFile(remotePath, localPath string) error {
	slog.Debug("Copying file to host", "local", localPath, "remote", remotePath)

	remoteFile, err := c.client.Open(remotePath)
	if err != nil {
		return fmt.Errorf("failed to open remote file '%s': %w", remotePath, err)
	}
	defer func() {
		if err := remoteFile.Close(); err != nil {
			slog.Error("failed to close remote file", "error", err, "path", remotePath)
		}
	}()

	localFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create/open local file '%s': %w", localPath, err)
	}
	defer func() {
		if err := localFile.Close(); err != nil {
			slog.Error("failed to close local file", "error", err, "path", localPath)
		}
	}()

	bytesCopied, err := io.Copy(localFile, remoteFile)
	if err != nil {
		return fmt.Errorf("failed to copy '%s' to '%s': %w", remotePath, localPath, err)
	}
	slog.Debug("Copied file to host", "local", localPath, "remote", remotePath, "bytes", bytesCopied)

	return nil
}

func (c *fromGuestCopier) CopyDir(remoteDir, localDir string) error {
	slog.Debug("Copying dir to host", "local", localDir, "remote", remoteDir)

	walker := c.client.Walk(remoteDir)

	for walker.Step() {
		if err := walker.Err(); err != nil {
			return fmt.Errorf("failed to walk remote dir '%s': %w", remoteDir, err)
		}

		relativePath, err := filepath.Rel(remoteDir, walker.Path())
		if err != nil {
			return fmt.Errorf("failed to determine relative path of '%s': %w", walker.Path(), err)
		}

		localPath := path.Join(localDir, filepath.ToSlash(relativePath))

		if walker.Stat().IsDir() {
			slog.Debug("Creating local dir", "path", localPath)

			if err := os.MkdirAll(localPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create local dir '%s': %w", localPath, err)
			}
			continue
		}
		if err := c.CopyFile(walker.Path(), localPath); err != nil {
			return err
		}
	}

	slog.Debug("Dir copied to host", "remote", remoteDir, "local", localDir)

	return nil
}

func analyzeLocalSource(sourcePath string) (*pathInfo, error) {
	slog.Debug("Analyzing local source", "path", sourcePath)

	localPath, err := cleanLocalPath(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to clean local path '%s': %w", sourcePath, err)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source '%s' does not exist", localPath)
		}
		return nil, fmt.Errorf("failed to retrieve information about source '%s': %w", localPath, err)
	}
	return &pathInfo{
		path:  localPath,
		isDir: info.IsDir(),
	}, nil
}

func analyzeLocalTarget(targetPath string) (*targetInfo, error) {
	slog.Debug("Analyzing local target", "path", targetPath)

	localPath, err := cleanLocalPath(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to clean local path '%s': %w", targetPath, err)
	}

	info, err := os.Stat(localPath)
	if err == nil {
		target := &targetInfo{
			pathInfo: pathInfo{
				path:  localPath,
				isDir: info.IsDir(),
			},
			isExisting: true,
		}

		slog.Debug("Local target existing", "path", target.path, "is-dir", target.isDir)
		return target, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check for local target '%s': %w", localPath, err)
	}

	slog.Debug("Local target not existing, checking for parent", "target", localPath)
	return analyzeLocalParent(localPath)
}

func analyzeLocalParent(targetPath string) (*targetInfo, error) {
	parent := path.Dir(targetPath)

	_, err := os.Stat(parent)
	if err == nil {
		slog.Debug("Local parent existing", "parent", parent)
		return &targetInfo{pathInfo: pathInfo{path: targetPath}}, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("local parent '%s' of target '%s' not existing", parent, targetPath)
	}
	return nil, fmt.Errorf("failed to check for local parent dir '%s': %w", parent, err)
}

func analyzeRemoteTarget(remotePath string, sftpClient *sftp.Client) (*targetInfo, error) {
	slog.Debug("Analyzing remote target", "path", remotePath)

	remotePath, err := cleanRemotePath(remotePath, sftpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to clean remote path '%s': %w", remotePath, err)
	}

	info, err := sftpClient.Stat(remotePath)
	if err == nil {
		target := &targetInfo{
			pathInfo: pathInfo{
				path:  remotePath,
				isDir: info.IsDir(),
			},
			isExisting: true,
		}

		slog.Debug("Remote target existing", "path", target.path, "is-dir", target.isDir)
		return target, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check for remote target '%s': %w", remotePath, err)
	}

	slog.Debug("Remote target not existing, checking for parent", "target", remotePath)
	return analyzeRemoteParent(remotePath, sftpClient)
}

func analyzeRemoteParent(targetPath string, sftpClient *sftp.Client) (*targetInfo, error) {
	parent := path.Dir(targetPath)

	_, err := sftpClient.Stat(parent)
	if err == nil {
		slog.Debug("Remote parent existing", "parent", parent)
		return &targetInfo{pathInfo: pathInfo{path: targetPath}}, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remote parent '%s' of target '%s' not existing", parent, targetPath)
	}
	return nil, fmt.Errorf("failed to check for remote parent dir '%s': %w", parent, err)
}

func analyzeRemoteSource(remotePath string, sftpClient *sftp.Client) (*pathInfo, error) {
	slog.Debug("Analyzing remote source", "path", remotePath)

	remotePath, err := cleanRemotePath(remotePath, sftpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to clean remote path '%s': %w", remotePath, err)
	}

	info, err := sftpClient.Stat(remotePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source '%s' does not exist", remotePath)
		}
		return nil, fmt.Errorf("failed to retrieve information about source '%s': %w", remotePath, err)
	}
	return &pathInfo{
		path:  remotePath,
		isDir: info.IsDir(),
	}, nil
}

func cleanLocalPath(localPath string) (string, error) {
	slog.Debug("Cleaning local path", "path", localPath)

	resolvedPath, err := host.ResolveTildePrefix(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to clean local path '%s': %w", localPath, err)
	}
	return path.Clean(filepath.ToSlash(resolvedPath)), nil
}

func cleanRemotePath(remotePath string, sftpClient *sftp.Client) (string, error) {
	slog.Debug("Cleaning remote path", "path", remotePath)

	remotePath, err := resolveRemoteTildePrefix(filepath.ToSlash(remotePath), sftpClient)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tilde prefix in remote path '%s': %w", remotePath, err)
	}

	return path.Clean(remotePath), nil
}

func resolveRemoteTildePrefix(remotePath string, sftpClient *sftp.Client) (string, error) {
	if !strings.HasPrefix(remotePath, "~") {
		return remotePath, nil
	}

	homeDir, err := sftpClient.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine home dir on guest: %w", err)
	}
	return strings.Replace(remotePath, "~", homeDir, 1), nil
}

func copySourceToTarget(source pathInfo, target targetInfo, copier copier) error {
	if source.isDir {
		return copyDir(source.path, target, copier)
	}
	return copyFile(source.path, target, copier)
}

func copyFile(source string, target targetInfo, copier copier) error {
	targetPath := target.path
	if target.isExisting && target.isDir {
		targetPath = path.Join(targetPath, path.Base(source))
	}
	return copier.CopyFile(source, targetPath)
}

func copyDir(source string, target targetInfo, copier copier) error {
	targetPath := target.path

	if target.isExisting {
		if !target.isDir {
			return fmt.Errorf("target '%s' is a file", target.path)
		}
		targetPath = path.Join(targetPath, path.Base(source))
	}
	return copier.CopyDir(source, targetPath)
}
