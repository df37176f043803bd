// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package guest_test

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boxworks/boxctl/internal/core/config"
	"github.com/boxworks/boxctl/internal/core/guest"
	"github.com/boxworks/boxctl/internal/core/machine"
)

func TestGuestPkg(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "guest pkg Tests", Label("ci", "guest"))
}

var _ = BeforeSuite(func() {
	slog.SetDefault(slog.New(logr.ToSlogHandler(GinkgoLogr)))
})

func newTestConfig(dataDir string) *config.Config {
	return &config.Config{
		Manager: config.ManagerConfig{DataDir: dataDir, ProcessName: "boxd"},
		Ssh:     config.SshConfig{RemoteUser: "box", Port: 22, Timeout: "30s"},
	}
}

func writeIndexWithMachines(machinesJson string) string {
	dataDir := GinkgoT().TempDir()
	indexDir := filepath.Join(dataDir, "machine-index")

	Expect(os.MkdirAll(indexDir, os.ModePerm)).To(Succeed())

	content := fmt.Sprintf(`{"version": 1, "machines": {%s}}`, machinesJson)

	Expect(os.WriteFile(filepath.Join(indexDir, machine.IndexFileName), []byte(content), os.ModePerm)).To(Succeed())

	return dataDir
}

var _ = Describe("guest pkg", func() {
	Describe("Resolve", func() {
		When("machine name is given explicitly", func() {
			It("builds connection options from the index entry", func() {
				dataDir := writeIndexWithMachines(`
					"4f8c36a6-52ba-44f0-baa7-0f7d64a3a001": {
						"name": "dev",
						"state": "running",
						"ssh": {"host": "192.168.56.10", "port": 2222, "user": "deploy", "privateKeyPath": "~/.box/keys/dev"}
					}`)

				target, err := guest.Resolve(newTestConfig(dataDir), "dev")

				Expect(err).ToNot(HaveOccurred())
				Expect(target.Machine.Name).To(Equal("dev"))

				options := target.ConnectionOptions()
				Expect(options.Host).To(Equal("192.168.56.10"))
				Expect(options.Port).To(Equal(uint16(2222)))
				Expect(options.RemoteUser).To(Equal("deploy"))
				Expect(options.SshPrivateKeyPath).ToNot(HavePrefix("~"))
				Expect(options.SshPrivateKeyPath).To(HaveSuffix(filepath.Join(".box", "keys", "dev")))
				Expect(options.Timeout).To(Equal(30 * time.Second))
			})
		})

		When("index entry omits port and user", func() {
			It("falls back to the configured values", func() {
				dataDir := writeIndexWithMachines(`
					"4f8c36a6-52ba-44f0-baa7-0f7d64a3a001": {
						"name": "dev",
						"state": "running",
						"ssh": {"host": "192.168.56.10", "privateKeyPath": "/keys/dev"}
					}`)

				target, err := guest.Resolve(newTestConfig(dataDir), "dev")

				Expect(err).ToNot(HaveOccurred())

				options := target.ConnectionOptions()
				Expect(options.Port).To(Equal(uint16(22)))
				Expect(options.RemoteUser).To(Equal("box"))
			})
		})

		When("index entry has no SSH host", func() {
			It("returns an error", func() {
				dataDir := writeIndexWithMachines(`
					"4f8c36a6-52ba-44f0-baa7-0f7d64a3a001": {
						"name": "dev",
						"state": "running"
					}`)

				target, err := guest.Resolve(newTestConfig(dataDir), "dev")

				Expect(target).To(BeNil())
				Expect(err).To(MatchError(ContainSubstring("no SSH host in index")))
			})
		})

		When("machine is not running", func() {
			It("returns not-running error", func() {
				dataDir := writeIndexWithMachines(`
					"4f8c36a6-52ba-44f0-baa7-0f7d64a3a001": {
						"name": "dev",
						"state": "stopped",
						"ssh": {"host": "192.168.56.10"}
					}`)

				target, err := guest.Resolve(newTestConfig(dataDir), "dev")

				Expect(target).To(BeNil())
				Expect(err).To(MatchError(machine.ErrMachineNotRunning))
			})
		})

		When("no machine name is given and a box manifest is present", func() {
			It("resolves the machine named in the manifest with its remote user override", func() {
				dataDir := writeIndexWithMachines(`
					"4f8c36a6-52ba-44f0-baa7-0f7d64a3a001": {
						"name": "dev",
						"state": "running",
						"ssh": {"host": "192.168.56.10", "privateKeyPath": "/keys/dev"}
					},
					"c9a1a6f6-7f3f-4f38-a1f3-0f58c8f28a11": {
						"name": "worker",
						"state": "running",
						"ssh": {"host": "192.168.56.11", "privateKeyPath": "/keys/worker"}
					}`)

				projectDir := GinkgoT().TempDir()
				manifestContent := `apiVersion: v1
kind: Box
metadata:
  name: worker
spec:
  remoteUser: deploy
`
				Expect(os.WriteFile(filepath.Join(projectDir, "box.yaml"), []byte(manifestContent), os.ModePerm)).To(Succeed())

				workingDir, err := os.Getwd()
				Expect(err).ToNot(HaveOccurred())
				Expect(os.Chdir(projectDir)).To(Succeed())
				DeferCleanup(func() {
					Expect(os.Chdir(workingDir)).To(Succeed())
				})

				target, err := guest.Resolve(newTestConfig(dataDir), "")

				Expect(err).ToNot(HaveOccurred())
				Expect(target.Machine.Name).To(Equal("worker"))
				Expect(target.ConnectionOptions().RemoteUser).To(Equal("deploy"))
			})
		})

		When("no machine name is given and no manifest exists", func() {
			It("falls back to the sole machine in the index", func() {
				dataDir := writeIndexWithMachines(`
					"4f8c36a6-52ba-44f0-baa7-0f7d64a3a001": {
						"name": "dev",
						"state": "running",
						"ssh": {"host": "192.168.56.10", "privateKeyPath": "/keys/dev"}
					}`)

				projectDir := GinkgoT().TempDir()

				workingDir, err := os.Getwd()
				Expect(err).ToNot(HaveOccurred())
				Expect(os.Chdir(projectDir)).To(Succeed())
				DeferCleanup(func() {
					Expect(os.Chdir(workingDir)).To(Succeed())
				})

				target, err := guest.Resolve(newTestConfig(dataDir), "")

				Expect(err).ToNot(HaveOccurred())
				Expect(target.Machine.Name).To(Equal("dev"))
			})
		})
	})
})
