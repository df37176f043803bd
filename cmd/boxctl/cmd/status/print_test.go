// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package status_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/status"
	"github.com/boxworks/boxctl/internal/core/machine"
	"github.com/boxworks/boxctl/internal/json"
)

type mockObject struct {
	mock.Mock
}

func (m *mockObject) Println(mm ...any) {
	m.Called(mm...)
}

func (m *mockObject) PrintHeader(mm ...any) {
	m.Called(mm...)
}

func (m *mockObject) PrintSuccess(mm ...any) {
	m.Called(mm...)
}

func (m *mockObject) PrintInfoln(mm ...any) {
	m.Called(mm...)
}

func (m *mockObject) PrintWarning(mm ...any) {
	m.Called(mm...)
}

func (m *mockObject) PrintTableWithHeaders(table [][]string) {
	m.Called(table)
}

func (m *mockObject) PrintCyanFg(text string) string {
	args := m.Called(text)

	return args.String(0)
}

func (m *mockObject) PrintRedFg(text string) string {
	args := m.Called(text)

	return args.String(0)
}

func (m *mockObject) PrintGreenFg(text string) string {
	args := m.Called(text)

	return args.String(0)
}

func (m *mockObject) StartSpinner(mm ...any) (any, error) {
	args := m.Called(mm...)

	return args.Get(0), args.Error(1)
}

func (m *mockObject) Stop() error {
	args := m.Called()

	return args.Error(0)
}

func TestStatusPkg(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "status pkg Tests", Label("ci", "status"))
}

var _ = BeforeSuite(func() {
	slog.SetDefault(slog.New(logr.ToSlogHandler(GinkgoLogr)))
})

var _ = Describe("status pkg", func() {
	Describe("JsonPrinter", func() {
		When("status loading fails", func() {
			It("returns the load error", func() {
				loadErr := errors.New("load failed")
				loadFunc := func() (*status.LoadedStatus, error) { return nil, loadErr }

				printer := status.NewJsonPrinter(func(m ...any) {}, json.MarshalIndent, loadFunc)

				Expect(printer.Print()).To(MatchError(loadErr))
			})
		})

		When("status loading succeeds", func() {
			It("prints the status as JSON", func() {
				loadFunc := func() (*status.LoadedStatus, error) {
					return &status.LoadedStatus{
						ManagerRunning: true,
						Machines: []machine.Machine{
							{Name: "dev", Provider: "qemu", State: machine.StateRunning},
						},
					}, nil
				}

				var printed string
				printlnFunc := func(m ...any) {
					printed = m[0].(string)
				}

				printer := status.NewJsonPrinter(printlnFunc, json.MarshalIndent, loadFunc)

				Expect(printer.Print()).To(Succeed())
				Expect(printed).To(ContainSubstring(`"managerRunning": true`))
				Expect(printed).To(ContainSubstring(`"name": "dev"`))
				Expect(printed).To(ContainSubstring(`"error": null`))
			})
		})
	})

	Describe("UserFriendlyPrinter", func() {
		var printerMock *mockObject
		var spinnerMock *mockObject

		BeforeEach(func() {
			spinnerMock = &mockObject{}
			spinnerMock.On("Stop").Return(nil)

			printerMock = &mockObject{}
			printerMock.On("StartSpinner", mock.Anything).Return(spinnerMock, nil)
		})

		When("status loading fails", func() {
			It("stops the spinner and returns the load error", func() {
				loadErr := errors.New("load failed")
				loadFunc := func() (*status.LoadedStatus, error) { return nil, loadErr }

				printer := status.NewUserFriendlyPrinter("boxd", false, printerMock, loadFunc)

				Expect(printer.Print()).To(MatchError(loadErr))

				spinnerMock.AssertCalled(GinkgoT(), "Stop")
			})
		})

		When("manager is running and all machines run", func() {
			It("prints success messages and the machine table", func() {
				loadFunc := func() (*status.LoadedStatus, error) {
					return &status.LoadedStatus{
						ManagerRunning: true,
						Machines: []machine.Machine{
							{Name: "dev", Provider: "qemu", State: machine.StateRunning, UpdatedAt: time.Now()},
						},
					}, nil
				}

				printerMock.On("PrintHeader", mock.Anything)
				printerMock.On("PrintCyanFg", "boxd").Return("boxd")
				printerMock.On("PrintGreenFg", "running").Return("running")
				printerMock.On("PrintSuccess", mock.Anything)
				printerMock.On("PrintTableWithHeaders", mock.Anything)
				printerMock.On("Println")

				printer := status.NewUserFriendlyPrinter("boxd", false, printerMock, loadFunc)

				Expect(printer.Print()).To(Succeed())

				printerMock.AssertCalled(GinkgoT(), "PrintSuccess", "The VM manager 'boxd' is running")
				printerMock.AssertCalled(GinkgoT(), "PrintSuccess", "All machines are running")
			})
		})

		When("manager is not running and a machine is stopped", func() {
			It("prints warnings", func() {
				loadFunc := func() (*status.LoadedStatus, error) {
					return &status.LoadedStatus{
						ManagerRunning: false,
						Machines: []machine.Machine{
							{Name: "dev", Provider: "qemu", State: machine.StateStopped, UpdatedAt: time.Now()},
						},
					}, nil
				}

				printerMock.On("PrintHeader", mock.Anything)
				printerMock.On("PrintCyanFg", "boxd").Return("boxd")
				printerMock.On("PrintRedFg", "stopped").Return("stopped")
				printerMock.On("PrintWarning", mock.Anything)
				printerMock.On("PrintTableWithHeaders", mock.Anything)
				printerMock.On("Println")

				printer := status.NewUserFriendlyPrinter("boxd", false, printerMock, loadFunc)

				Expect(printer.Print()).To(Succeed())

				printerMock.AssertCalled(GinkgoT(), "PrintWarning", "The VM manager 'boxd' is not running")
				printerMock.AssertCalled(GinkgoT(), "PrintWarning", "Some machines are not running")
			})
		})

		When("index contains no machines", func() {
			It("prints an info message instead of a table", func() {
				loadFunc := func() (*status.LoadedStatus, error) {
					return &status.LoadedStatus{ManagerRunning: true}, nil
				}

				printerMock.On("PrintHeader", mock.Anything)
				printerMock.On("PrintCyanFg", "boxd").Return("boxd")
				printerMock.On("PrintSuccess", mock.Anything)
				printerMock.On("PrintInfoln", mock.Anything)
				printerMock.On("Println")

				printer := status.NewUserFriendlyPrinter("boxd", false, printerMock, loadFunc)

				Expect(printer.Print()).To(Succeed())

				printerMock.AssertCalled(GinkgoT(), "PrintInfoln", "No machines found in the index")
				printerMock.AssertNotCalled(GinkgoT(), "PrintTableWithHeaders", mock.Anything)
			})
		})

		When("additional info is requested", func() {
			It("adds SSH columns to the table", func() {
				loadFunc := func() (*status.LoadedStatus, error) {
					return &status.LoadedStatus{
						ManagerRunning: true,
						Machines: []machine.Machine{
							{
								Name:     "dev",
								Provider: "qemu",
								State:    machine.StateRunning,
								Ssh:      machine.SshEndpoint{Host: "192.168.56.10", Port: 2222, User: "box"},
							},
						},
					}, nil
				}

				var table [][]string
				printerMock.On("PrintHeader", mock.Anything)
				printerMock.On("PrintCyanFg", "boxd").Return("boxd")
				printerMock.On("PrintGreenFg", "running").Return("running")
				printerMock.On("PrintSuccess", mock.Anything)
				printerMock.On("PrintTableWithHeaders", mock.Anything).Run(func(args mock.Arguments) {
					table = args.Get(0).([][]string)
				})
				printerMock.On("Println")

				printer := status.NewUserFriendlyPrinter("boxd", true, printerMock, loadFunc)

				Expect(printer.Print()).To(Succeed())

				Expect(table[0]).To(Equal([]string{"STATE", "NAME", "PROVIDER", "UPDATED", "SSH-HOST", "SSH-PORT", "SSH-USER"}))
				Expect(table[1]).To(ContainElements("192.168.56.10", "2222", "box"))
			})
		})
	})
})
