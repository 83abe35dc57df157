package controller

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GenerateQuestionRequest AI 出题请求，fileKey 指向已上传的参考文件
// swagger:model GenerateQuestionRequest
type GenerateQuestionRequest struct {
	FileKey string `json:"fileKey" binding:"required"`
}

// QuizSubmitRequest 学生作答
// swagger:model QuizSubmitRequest
type QuizSubmitRequest struct {
	Answers []service.QuizAnswer `json:"answers" binding:"required"`
}

// List godoc
// @Summary 测验列表
// @Tags 测验
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	quizzes, err := c.QuizService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary 测验详情
// @Description 学生视角不返回参考答案，教师返回完整题目
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var quiz *model.Quiz
	var err error
	if claims != nil && claims.Role != model.Student {
		quiz, err = c.QuizService.Get(id)
	} else {
		quiz, err = c.QuizService.GetForStudent(id)
	}
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// Create godoc
// @Summary 新建测验
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   courseId query int true "课程ID"
// @Param   courseWeekId query int false "教学周ID"
// @Param   body body service.QuizInput true "测验内容"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(
		util.MustParseUint(ctx.Query("courseId")),
		util.MustParseUint(ctx.Query("courseWeekId")),
		input,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Update godoc
// @Summary 编辑测验
// @Description 测验信息和题目整体替换，同一事务内生效
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Param   body body service.QuizInput true "测验内容"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// GenerateQuestion godoc
// @Summary AI出题
// @Description 根据已上传参考文件生成一道单选题草稿，教师确认后随测验保存
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   body body GenerateQuestionRequest true "参考文件"
// @Success 200 {object} util.Response{data=service.GeneratedQuestion}
// @Failure 502 {object} util.Response "AI 服务调用失败"
// @Router /api/quizzes/generate-question [post]
func (c *QuizController) GenerateQuestion(ctx *gin.Context) {
	var req GenerateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.GenerateQuestion(ctx.Request.Context(), req.FileKey)
	if err != nil {
		util.Error(ctx, 502, "AI出题服务暂时不可用，请稍后重试")
		return
	}
	util.Success(ctx, question)
}

// Submit godoc
// @Summary 提交测验作答
// @Description 选择题自动判分，每人只能提交一次
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Param   body body QuizSubmitRequest true "作答内容"
// @Success 201 {object} util.Response{data=model.QuizSubmission}
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.QuizService.Submit(util.MustParseUint(ctx.Param("id")), claims.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizAlreadySubmitted):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, submission)
}

// Result godoc
// @Summary 测验成绩
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizSubmission}
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/quizzes/{id}/result [get]
func (c *QuizController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.Result(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, result)
}
