// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package common_test

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	"github.com/boxworks/boxctl/internal/core/machine"
)

func TestCommonPkg(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "common pkg Tests", Label("ci", "common"))
}

var _ = BeforeSuite(func() {
	slog.SetDefault(slog.New(logr.ToSlogHandler(GinkgoLogr)))
})

var _ = Describe("common pkg", func() {
	Describe("CreateTargetResolveFailure", func() {
		When("index was not found", func() {
			It("maps to manager-not-initialized warning", func() {
				err := fmt.Errorf("wrapped: %w", machine.ErrIndexNotFound)

				result := common.CreateTargetResolveFailure(err)

				var failure *common.CmdFailure
				Expect(errors.As(result, &failure)).To(BeTrue())
				Expect(failure.Severity).To(Equal(common.SeverityWarning))
				Expect(failure.Code).To(Equal(machine.ErrIndexNotFound.Error()))
				Expect(failure.Message).To(Equal(common.ErrManagerNotInitializedMsg))
			})
		})

		When("machine was not found", func() {
			It("maps to error failure carrying the original message", func() {
				err := fmt.Errorf("no machine named 'dev' in index: %w", machine.ErrMachineNotFound)

				result := common.CreateTargetResolveFailure(err)

				var failure *common.CmdFailure
				Expect(errors.As(result, &failure)).To(BeTrue())
				Expect(failure.Severity).To(Equal(common.SeverityError))
				Expect(failure.Code).To(Equal(machine.ErrMachineNotFound.Error()))
				Expect(failure.Message).To(ContainSubstring("no machine named 'dev'"))
			})
		})

		When("target selection is ambiguous", func() {
			It("maps to error failure hinting at the machine flag", func() {
				err := fmt.Errorf("multiple machines in index: %w", machine.ErrMachineAmbiguous)

				result := common.CreateTargetResolveFailure(err)

				var failure *common.CmdFailure
				Expect(errors.As(result, &failure)).To(BeTrue())
				Expect(failure.Severity).To(Equal(common.SeverityError))
				Expect(failure.Message).To(ContainSubstring("--machine"))
			})
		})

		When("machine is not running", func() {
			It("maps to warning failure", func() {
				err := fmt.Errorf("machine 'dev' is in state 'stopped': %w", machine.ErrMachineNotRunning)

				result := common.CreateTargetResolveFailure(err)

				var failure *common.CmdFailure
				Expect(errors.As(result, &failure)).To(BeTrue())
				Expect(failure.Severity).To(Equal(common.SeverityWarning))
				Expect(failure.Code).To(Equal(machine.ErrMachineNotRunning.Error()))
			})
		})

		When("error is unknown", func() {
			It("passes the error through unchanged", func() {
				err := errors.New("oops")

				result := common.CreateTargetResolveFailure(err)

				Expect(result).To(BeIdenticalTo(err))
			})
		})
	})

	Describe("CmdFailure", func() {
		It("formats code and message", func() {
			failure := &common.CmdFailure{Code: "some-code", Message: "some message"}

			Expect(failure.Error()).To(Equal("some-code: some message"))
		})
	})

	Describe("FailureSeverity", func() {
		It("prints severity names", func() {
			Expect(common.SeverityWarning.String()).To(Equal("warning"))
			Expect(common.SeverityError.String()).To(Equal("error"))
			Expect(common.FailureSeverity(9).String()).To(Equal("unknown"))
		})
	})
})
