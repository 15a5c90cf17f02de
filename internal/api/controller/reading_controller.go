package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haoyun/tianji/internal/api/response"
	"github.com/haoyun/tianji/internal/bazi"
	"github.com/haoyun/tianji/internal/calendar"
	"github.com/haoyun/tianji/internal/model"
	"github.com/haoyun/tianji/internal/service"
)

type ReadingController struct {
	service *service.ReadingService // 依赖 Service
}

// NewReadingController 构造函数
func NewReadingController(s *service.ReadingService) *ReadingController {
	return &ReadingController{service: s}
}

// ReadingResponse 报告响应，带缓存命中标记方便前端展示
type ReadingResponse struct {
	Reading *model.FortuneReading `json:"reading"`
	Cached  bool                  `json:"cached"`
}

// Generate 生成命理报告
// @Summary 生成命理报告
// @Description 根据出生信息排盘并由 AI 生成文言/白话双层命理报告，结果缓存 24 小时。
// @Tags Reading
// @Accept json
// @Produce json
// @Param request body model.BirthInput true "出生信息"
// @Success 200 {object} response.Response{data=controller.ReadingResponse}
// @Router /readings [post]
func (ctrl *ReadingController) Generate(c *gin.Context) {
	var req model.BirthInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	slog.Info("收到报告生成请求", "birth_date", req.BirthDate, "gender", req.Gender)

	reading, cached, err := ctrl.service.GenerateReading(c.Request.Context(), req)
	if err != nil {
		status, msg := classifyError(err)
		slog.Error("报告生成失败", "error", err)
		response.Error(c, status, msg)
		return
	}

	response.Success(c, ReadingResponse{Reading: reading, Cached: cached})
}

// Chart 仅排盘
// @Summary 排盘
// @Description 只做农历转换与四柱排盘，不调用 AI，不写缓存。
// @Tags Reading
// @Accept json
// @Produce json
// @Param request body model.BirthInput true "出生信息"
// @Success 200 {object} response.Response{data=model.ChartPayload}
// @Router /chart [post]
func (ctrl *ReadingController) Chart(c *gin.Context) {
	var req model.BirthInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	chart, err := ctrl.service.ComputeChart(req)
	if err != nil {
		status, msg := classifyError(err)
		slog.Error("排盘失败", "error", err)
		response.Error(c, status, msg)
		return
	}

	response.Success(c, chart)
}

// classifyError 把业务错误映射为 HTTP 状态与用户可见文案。
// 排盘类错误是用户输入问题；其余当作服务端故障，不暴露细节。
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, calendar.ErrConversion):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, bazi.ErrIncompleteBazi):
		return http.StatusUnprocessableEntity, "八字信息不完整，建议使用专业万年历确认"
	default:
		return http.StatusInternalServerError, "命理分析暂时无法进行，请稍后再试"
	}
}
