// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boxworks/boxctl/internal/core/config"
)

func TestConfigPkg(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config pkg Tests", Label("ci", "config"))
}

var _ = BeforeSuite(func() {
	slog.SetDefault(slog.New(logr.ToSlogHandler(GinkgoLogr)))
})

var _ = Describe("config pkg", func() {
	Describe("Load", func() {
		When("no user config exists", func() {
			It("returns the embedded defaults", func() {
				boxctlDir := GinkgoT().TempDir()

				loaded, err := config.Load(boxctlDir)

				Expect(err).ToNot(HaveOccurred())
				Expect(loaded.Manager.ProcessName).To(Equal("boxd"))
				Expect(loaded.Manager.DataDir).ToNot(BeEmpty())
				Expect(loaded.Manager.DataDir).ToNot(HavePrefix("~"))
				Expect(loaded.Ssh.RemoteUser).To(Equal("box"))
				Expect(loaded.Ssh.Port).To(Equal(uint16(22)))
			})
		})

		When("user config overrides defaults", func() {
			It("merges the user values on top", func() {
				boxctlDir := GinkgoT().TempDir()
				userConfig := `manager:
  processName: boxd-dev
ssh:
  timeout: 5s
`
				Expect(os.WriteFile(filepath.Join(boxctlDir, config.UserConfigFileName), []byte(userConfig), os.ModePerm)).To(Succeed())

				loaded, err := config.Load(boxctlDir)

				Expect(err).ToNot(HaveOccurred())
				Expect(loaded.Manager.ProcessName).To(Equal("boxd-dev"))
				Expect(loaded.Ssh.Timeout).To(Equal("5s"))
				Expect(loaded.Ssh.RemoteUser).To(Equal("box"))
			})
		})

		When("user config is no valid YAML", func() {
			It("returns merge error", func() {
				boxctlDir := GinkgoT().TempDir()

				Expect(os.WriteFile(filepath.Join(boxctlDir, config.UserConfigFileName), []byte("\t: not yaml"), os.ModePerm)).To(Succeed())

				loaded, err := config.Load(boxctlDir)

				Expect(loaded).To(BeNil())
				Expect(err).To(MatchError(ContainSubstring("failed to merge user config file")))
			})
		})
	})

	Describe("SshTimeout", func() {
		When("timeout is a valid duration", func() {
			It("parses it", func() {
				loaded := &config.Config{Ssh: config.SshConfig{Timeout: "30s"}}

				timeout, err := loaded.SshTimeout()

				Expect(err).ToNot(HaveOccurred())
				Expect(timeout).To(Equal(30 * time.Second))
			})
		})

		When("timeout is invalid", func() {
			It("returns parse error", func() {
				loaded := &config.Config{Ssh: config.SshConfig{Timeout: "soon"}}

				_, err := loaded.SshTimeout()

				Expect(err).To(MatchError(ContainSubstring("invalid SSH timeout 'soon'")))
			})
		})
	})
})
